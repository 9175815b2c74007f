package codec

import (
	"strconv"
	"strings"

	"github.com/yanun0323/errors"

	"main/internal/model/enum"
)

// DepthLevels is the number of price levels carried by one depth row.
const DepthLevels = 5

var ErrBadRow = errors.New("malformed input row")

// TradeRecord is one row of the trades file.
type TradeRecord struct {
	TradeID  string
	IDType   enum.IDType
	BondID   string
	Side     enum.TradeSide
	Quantity int64
	Price    float64
	Book     string
}

// PriceRecord is one row of the prices file.
type PriceRecord struct {
	IDType enum.IDType
	BondID string
	Mid    float64
	Spread float64
}

// DepthRecord is one row of the market depth file. Level i contributes a bid
// at Mid-Spreads[i] and an offer at Mid+Spreads[i], both of Sizes[i].
type DepthRecord struct {
	IDType  enum.IDType
	BondID  string
	Mid     float64
	Spreads [DepthLevels]float64
	Sizes   [DepthLevels]int64
}

// InquiryRecord is one row of the inquiries file.
type InquiryRecord struct {
	ID       string
	IDType   enum.IDType
	BondID   string
	Side     enum.TradeSide
	Quantity int64
	Price    float64
	State    enum.InquiryState
}

// SplitRow splits a comma-separated row and trims each field.
func SplitRow(line string) []string {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// DecodeTradeRow decodes tradeId,idType,bondId,side,quantity,price,bookId.
func DecodeTradeRow(line string) (TradeRecord, error) {
	fields := SplitRow(line)
	if len(fields) != 7 {
		return TradeRecord{}, errors.Wrap(ErrBadRow, line)
	}

	quantity, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return TradeRecord{}, errors.Wrap(ErrBadRow, line)
	}
	price, err := ParsePrice(fields[5])
	if err != nil {
		return TradeRecord{}, errors.Wrap(err, line)
	}

	return TradeRecord{
		TradeID:  fields[0],
		IDType:   enum.ParseIDType(fields[1]),
		BondID:   fields[2],
		Side:     enum.ParseTradeSide(fields[3]),
		Quantity: quantity,
		Price:    price,
		Book:     fields[6],
	}, nil
}

// DecodePriceRow decodes idType,bondId,price,spread.
func DecodePriceRow(line string) (PriceRecord, error) {
	fields := SplitRow(line)
	if len(fields) != 4 {
		return PriceRecord{}, errors.Wrap(ErrBadRow, line)
	}

	mid, err := ParsePrice(fields[2])
	if err != nil {
		return PriceRecord{}, errors.Wrap(err, line)
	}
	spread, err := ParsePrice(fields[3])
	if err != nil {
		return PriceRecord{}, errors.Wrap(err, line)
	}

	return PriceRecord{
		IDType: enum.ParseIDType(fields[0]),
		BondID: fields[1],
		Mid:    mid,
		Spread: spread,
	}, nil
}

// DecodeDepthRow decodes idType,bondId,mid,spread1..5,size1..5.
func DecodeDepthRow(line string) (DepthRecord, error) {
	fields := SplitRow(line)
	if len(fields) != 3+2*DepthLevels {
		return DepthRecord{}, errors.Wrap(ErrBadRow, line)
	}

	rec := DepthRecord{
		IDType: enum.ParseIDType(fields[0]),
		BondID: fields[1],
	}

	mid, err := ParsePrice(fields[2])
	if err != nil {
		return DepthRecord{}, errors.Wrap(err, line)
	}
	rec.Mid = mid

	for i := 0; i < DepthLevels; i++ {
		spread, err := ParsePrice(fields[3+i])
		if err != nil {
			return DepthRecord{}, errors.Wrap(err, line)
		}
		size, err := strconv.ParseInt(fields[3+DepthLevels+i], 10, 64)
		if err != nil {
			return DepthRecord{}, errors.Wrap(ErrBadRow, line)
		}
		rec.Spreads[i] = spread
		rec.Sizes[i] = size
	}
	return rec, nil
}

// DecodeInquiryRow decodes inquiryId,idType,bondId,side,quantity,price,state.
func DecodeInquiryRow(line string) (InquiryRecord, error) {
	fields := SplitRow(line)
	if len(fields) != 7 {
		return InquiryRecord{}, errors.Wrap(ErrBadRow, line)
	}

	quantity, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return InquiryRecord{}, errors.Wrap(ErrBadRow, line)
	}
	price, err := ParsePrice(fields[5])
	if err != nil {
		return InquiryRecord{}, errors.Wrap(err, line)
	}

	return InquiryRecord{
		ID:       fields[0],
		IDType:   enum.ParseIDType(fields[1]),
		BondID:   fields[2],
		Side:     enum.ParseTradeSide(fields[3]),
		Quantity: quantity,
		Price:    price,
		State:    enum.ParseInquiryState(fields[6]),
	}, nil
}
