package model

import "main/internal/model/enum"

// Price is a mid/spread quote for a bond. Bid and offer are derived.
type Price struct {
	Product Bond
	Mid     float64
	Spread  float64
}

func (p Price) Bid() float64 {
	return p.Mid - p.Spread/2
}

func (p Price) Offer() float64 {
	return p.Mid + p.Spread/2
}

// PriceStreamOrder is one side of a streamed two-way price.
type PriceStreamOrder struct {
	Price           float64
	VisibleQuantity int64
	HiddenQuantity  int64
	Side            enum.PricingSide
}

// PriceStream is a streamed two-way price for a bond.
type PriceStream struct {
	Product Bond
	Bid     PriceStreamOrder
	Offer   PriceStreamOrder
}
