package model

import "main/internal/model/enum"

// Inquiry is a client price request moving through its lifecycle.
type Inquiry struct {
	ID       string
	Product  Bond
	Side     enum.TradeSide
	Quantity int64
	Price    float64
	State    enum.InquiryState
}
