package enum

import "strings"

// IDType cusip, isin
type IDType uint8

const (
	_id_type_beg IDType = iota
	IDTypeCUSIP
	IDTypeISIN
	_id_type_end
)

func (t IDType) IsAvailable() bool {
	return t > _id_type_beg && t < _id_type_end
}

func (t IDType) String() string {
	switch t {
	case IDTypeCUSIP:
		return "CUSIP"
	case IDTypeISIN:
		return "ISIN"
	default:
		return "UNKNOWN"
	}
}

// ParseIDType matches the canonical CUSIP spelling, anything else is ISIN.
func ParseIDType(s string) IDType {
	if strings.ToUpper(strings.TrimSpace(s)) == "CUSIP" {
		return IDTypeCUSIP
	}
	return IDTypeISIN
}
