package hist

import (
	"strconv"

	"github.com/yanun0323/logs"

	"main/internal/codec"
	"main/internal/model"
)

// Output file headers.
const (
	PositionHeader  = "Time,BondIDType,BondID,BookId,Positions"
	RiskHeader      = "Time,ProductIDType,ProductID,PV01,Quantity"
	StreamingHeader = "Time,BondIDType,BondID,BidPrice,BidVisibleQuantity,BidHiddenQuantity,OfferPrice,OfferVisibleQuantity,OfferHiddenQuantity"
	GUIHeader       = "Time,BondIDType,BondID,Price"
	ExecutionHeader = "Time,OrderType,OrderID,BondIDType,BondID,Side,VisibleQuantity,HiddenQuantity,Price,IsChildOrder,ParentOrderId"
	InquiryHeader   = "Time,InquiryID,BondIDType,BondID,Side,Quantity,Price,State"
)

// sectorIDType is the literal id-type column for sector risk rows.
const sectorIDType = "Bucketed Sector"

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func appendRow(w *LineWriter, fields ...string) {
	if err := w.Append(fields...); err != nil {
		logs.Errorf("append output row, err: %+v", err)
	}
}

// PositionConnector writes one row per trading book plus an AGGREGATED row
// per position update.
type PositionConnector struct {
	w *LineWriter
}

func NewPositionConnector(w *LineWriter) *PositionConnector {
	return &PositionConnector{w: w}
}

func (c *PositionConnector) Publish(pos model.Position) {
	bond := pos.Product
	for _, book := range model.TradingBooks {
		appendRow(c.w, bond.IDType.String(), bond.ID, book, formatInt(pos.Quantity(book)))
	}
	appendRow(c.w, bond.IDType.String(), bond.ID, "AGGREGATED", formatInt(pos.Aggregate()))
}

// RiskConnector writes per-bond PV01 rows and sector rows to one file.
type RiskConnector struct {
	w *LineWriter
}

func NewRiskConnector(w *LineWriter) *RiskConnector {
	return &RiskConnector{w: w}
}

func (c *RiskConnector) Publish(pv model.PV01[model.Bond]) {
	bond := pv.Product
	appendRow(c.w, bond.IDType.String(), bond.ID, formatFloat(pv.PerUnit), formatInt(pv.Quantity))
}

func (c *RiskConnector) PublishSector(pv model.PV01[model.BucketedSector]) {
	appendRow(c.w, sectorIDType, pv.Product.Name, formatFloat(pv.PerUnit), formatInt(pv.Quantity))
}

// StreamingConnector writes two-way stream rows.
type StreamingConnector struct {
	w *LineWriter
}

func NewStreamingConnector(w *LineWriter) *StreamingConnector {
	return &StreamingConnector{w: w}
}

func (c *StreamingConnector) Publish(ps model.PriceStream) {
	bond := ps.Product
	appendRow(c.w,
		bond.IDType.String(), bond.ID,
		formatFloat(ps.Bid.Price), formatInt(ps.Bid.VisibleQuantity), formatInt(ps.Bid.HiddenQuantity),
		formatFloat(ps.Offer.Price), formatInt(ps.Offer.VisibleQuantity), formatInt(ps.Offer.HiddenQuantity),
	)
}

// GUIConnector writes throttled mid prices in fractional notation.
type GUIConnector struct {
	w *LineWriter
}

func NewGUIConnector(w *LineWriter) *GUIConnector {
	return &GUIConnector{w: w}
}

func (c *GUIConnector) Publish(price model.Price) {
	bond := price.Product
	appendRow(c.w, bond.IDType.String(), bond.ID, codec.FormatPrice(price.Mid))
}

// ExecutionConnector writes routed execution orders.
type ExecutionConnector struct {
	w *LineWriter
}

func NewExecutionConnector(w *LineWriter) *ExecutionConnector {
	return &ExecutionConnector{w: w}
}

func (c *ExecutionConnector) Publish(order model.ExecutionOrder) {
	bond := order.Product
	child := "FALSE"
	if order.IsChildOrder {
		child = "TRUE"
	}
	appendRow(c.w,
		order.Type.String(), order.OrderID,
		bond.IDType.String(), bond.ID,
		order.Side.String(),
		formatInt(order.VisibleQuantity), formatInt(order.HiddenQuantity),
		codec.FormatPrice(order.Price),
		child, order.ParentOrderID,
	)
}

// InquiryConnector writes every inquiry state transition.
type InquiryConnector struct {
	w *LineWriter
}

func NewInquiryConnector(w *LineWriter) *InquiryConnector {
	return &InquiryConnector{w: w}
}

func (c *InquiryConnector) Publish(inq model.Inquiry) {
	bond := inq.Product
	appendRow(c.w,
		inq.ID, bond.IDType.String(), bond.ID,
		inq.Side.String(), formatInt(inq.Quantity),
		codec.FormatPrice(inq.Price), inq.State.String(),
	)
}
