package enum

import "strings"

// InquiryState received, quoted, done, rejected, customer rejected
type InquiryState uint8

const (
	_inquiry_state_beg InquiryState = iota
	InquiryReceived
	InquiryQuoted
	InquiryDone
	InquiryRejected
	InquiryCustomerRejected
	_inquiry_state_end
)

func (s InquiryState) IsAvailable() bool {
	return s > _inquiry_state_beg && s < _inquiry_state_end
}

// IsTerminal reports whether no further transition can happen.
func (s InquiryState) IsTerminal() bool {
	switch s {
	case InquiryDone, InquiryRejected, InquiryCustomerRejected:
		return true
	default:
		return false
	}
}

func (s InquiryState) String() string {
	switch s {
	case InquiryReceived:
		return "RECEIVED"
	case InquiryQuoted:
		return "QUOTED"
	case InquiryDone:
		return "DONE"
	case InquiryRejected:
		return "REJECTED"
	case InquiryCustomerRejected:
		return "CUSTOMER_REJECTED"
	default:
		return "UNKNOWN"
	}
}

// ParseInquiryState defaults to RECEIVED for unknown spellings.
func ParseInquiryState(s string) InquiryState {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "QUOTED":
		return InquiryQuoted
	case "DONE":
		return InquiryDone
	case "REJECTED":
		return InquiryRejected
	case "CUSTOMER_REJECTED":
		return InquiryCustomerRejected
	default:
		return InquiryReceived
	}
}
