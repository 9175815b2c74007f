package enum

import "strings"

// TradeSide buy, sell
type TradeSide uint8

const (
	_trade_side_beg TradeSide = iota
	TradeSideBuy
	TradeSideSell
	_trade_side_end
)

func (s TradeSide) IsAvailable() bool {
	return s > _trade_side_beg && s < _trade_side_end
}

func (s TradeSide) String() string {
	switch s {
	case TradeSideBuy:
		return "BUY"
	case TradeSideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// ParseTradeSide matches the canonical BUY spelling, anything else is SELL.
func ParseTradeSide(s string) TradeSide {
	if strings.ToUpper(strings.TrimSpace(s)) == "BUY" {
		return TradeSideBuy
	}
	return TradeSideSell
}

// PricingSide bid, offer
type PricingSide uint8

const (
	_pricing_side_beg PricingSide = iota
	PricingSideBid
	PricingSideOffer
	_pricing_side_end
)

func (s PricingSide) IsAvailable() bool {
	return s > _pricing_side_beg && s < _pricing_side_end
}

func (s PricingSide) String() string {
	switch s {
	case PricingSideBid:
		return "BID"
	case PricingSideOffer:
		return "OFFER"
	default:
		return "UNKNOWN"
	}
}
