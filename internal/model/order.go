package model

import "main/internal/model/enum"

// Order is a single depth level on one side of a book.
type Order struct {
	Price    float64
	Quantity int64
	Side     enum.PricingSide
}

// BidOffer pairs the top of book on both sides.
type BidOffer struct {
	Bid   Order
	Offer Order
}

// OrderBook holds the bid and offer stacks for a bond. Stacks are not
// guaranteed price-sorted; after aggregation each side carries at most one
// order per distinct price.
type OrderBook struct {
	Product Bond
	Bids    []Order
	Offers  []Order
}

// BestBidOffer returns the highest-priced bid and the lowest-priced offer.
func (ob OrderBook) BestBidOffer() BidOffer {
	var best BidOffer
	for i, o := range ob.Bids {
		if i == 0 || o.Price > best.Bid.Price {
			best.Bid = o
		}
	}
	for i, o := range ob.Offers {
		if i == 0 || o.Price < best.Offer.Price {
			best.Offer = o
		}
	}
	return best
}

// Clone deep-copies the book so listeners never alias the stored stacks.
func (ob OrderBook) Clone() OrderBook {
	cp := OrderBook{Product: ob.Product}
	cp.Bids = append([]Order(nil), ob.Bids...)
	cp.Offers = append([]Order(nil), ob.Offers...)
	return cp
}

// ParentOrderNone marks an execution order without a parent.
const ParentOrderNone = "N/A"

// ExecutionOrder is an order routed for execution.
type ExecutionOrder struct {
	Product         Bond
	Side            enum.PricingSide
	OrderID         string
	Type            enum.OrderType
	Price           float64
	VisibleQuantity int64
	HiddenQuantity  int64
	ParentOrderID   string
	IsChildOrder    bool
}
