package model

import (
	"time"

	"main/internal/model/enum"
)

// Bond is an immutable reference record for a treasury security.
type Bond struct {
	ID       string
	IDType   enum.IDType
	Ticker   string
	Coupon   float64
	Maturity time.Time
}

// MaturityYear returns the calendar year of maturity, used in order and
// trade identifier generation.
func (b Bond) MaturityYear() int {
	return b.Maturity.Year()
}

// IsZero reports whether the bond is the default-constructed record,
// which marks a failed reference-data lookup.
func (b Bond) IsZero() bool {
	return b.ID == "" && b.Ticker == ""
}
