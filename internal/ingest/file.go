// Package ingest reads the four external record files and feeds the edge
// services through their OnMessage callbacks. Order read is order processed.
package ingest

import (
	"bufio"
	"os"
	"strings"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/booking"
	"main/internal/codec"
	"main/internal/inquiry"
	"main/internal/marketdata"
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/obs"
	"main/internal/pricing"
	"main/internal/refdata"
)

const maxLineSize = 1 << 20

// readRows opens the file, discards the header row, and calls fn per
// non-empty line.
func readRows(path string, fn func(line string)) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open input file")
	}
	defer func() { _ = file.Close() }()

	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	header := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if header {
			header = false
			continue
		}
		if line == "" {
			continue
		}
		fn(line)
	}
	return errors.Wrap(sc.Err(), "scan input file")
}

func resolveBond(ref *refdata.Service, bondID string) (model.Bond, bool) {
	bond, ok := ref.Get(bondID)
	if !ok || bond.IsZero() {
		return model.Bond{}, false
	}
	return bond, true
}

// TradeConnector feeds trade booking from the trades file.
type TradeConnector struct {
	svc     *booking.Service
	ref     *refdata.Service
	metrics *obs.Metrics
}

func NewTradeConnector(svc *booking.Service, ref *refdata.Service, metrics *obs.Metrics) *TradeConnector {
	return &TradeConnector{svc: svc, ref: ref, metrics: metrics}
}

func (c *TradeConnector) Subscribe(path string) error {
	return readRows(path, func(line string) {
		rec, err := codec.DecodeTradeRow(line)
		if err != nil {
			logs.Errorf("skip trade row, err: %+v", err)
			c.metrics.ObserveSkip(obs.StreamTrades)
			return
		}
		bond, ok := resolveBond(c.ref, rec.BondID)
		if !ok {
			logs.Errorf("skip trade row, unknown product: %s", rec.BondID)
			c.metrics.ObserveSkip(obs.StreamTrades)
			return
		}

		c.svc.OnMessage(model.Trade{
			Product:  bond,
			TradeID:  rec.TradeID,
			Price:    rec.Price,
			Book:     rec.Book,
			Quantity: rec.Quantity,
			Side:     rec.Side,
		})
		c.metrics.ObserveRead(obs.StreamTrades)
	})
}

// PriceConnector feeds pricing from the prices file.
type PriceConnector struct {
	svc     *pricing.Service
	ref     *refdata.Service
	metrics *obs.Metrics
}

func NewPriceConnector(svc *pricing.Service, ref *refdata.Service, metrics *obs.Metrics) *PriceConnector {
	return &PriceConnector{svc: svc, ref: ref, metrics: metrics}
}

func (c *PriceConnector) Subscribe(path string) error {
	return readRows(path, func(line string) {
		rec, err := codec.DecodePriceRow(line)
		if err != nil {
			logs.Errorf("skip price row, err: %+v", err)
			c.metrics.ObserveSkip(obs.StreamPrices)
			return
		}
		bond, ok := resolveBond(c.ref, rec.BondID)
		if !ok {
			logs.Errorf("skip price row, unknown product: %s", rec.BondID)
			c.metrics.ObserveSkip(obs.StreamPrices)
			return
		}

		c.svc.OnMessage(model.Price{Product: bond, Mid: rec.Mid, Spread: rec.Spread})
		c.metrics.ObserveRead(obs.StreamPrices)
	})
}

// MarketDataConnector feeds the market data stage from the depth file. Each
// depth level i contributes a bid at mid-spread_i and an offer at
// mid+spread_i, both of size_i.
type MarketDataConnector struct {
	svc     *marketdata.Service
	ref     *refdata.Service
	metrics *obs.Metrics
}

func NewMarketDataConnector(svc *marketdata.Service, ref *refdata.Service, metrics *obs.Metrics) *MarketDataConnector {
	return &MarketDataConnector{svc: svc, ref: ref, metrics: metrics}
}

func (c *MarketDataConnector) Subscribe(path string) error {
	return readRows(path, func(line string) {
		rec, err := codec.DecodeDepthRow(line)
		if err != nil {
			logs.Errorf("skip depth row, err: %+v", err)
			c.metrics.ObserveSkip(obs.StreamMarketData)
			return
		}
		bond, ok := resolveBond(c.ref, rec.BondID)
		if !ok {
			logs.Errorf("skip depth row, unknown product: %s", rec.BondID)
			c.metrics.ObserveSkip(obs.StreamMarketData)
			return
		}

		book := model.OrderBook{Product: bond}
		for i := 0; i < codec.DepthLevels; i++ {
			book.Bids = append(book.Bids, model.Order{
				Price:    rec.Mid - rec.Spreads[i],
				Quantity: rec.Sizes[i],
				Side:     enum.PricingSideBid,
			})
			book.Offers = append(book.Offers, model.Order{
				Price:    rec.Mid + rec.Spreads[i],
				Quantity: rec.Sizes[i],
				Side:     enum.PricingSideOffer,
			})
		}

		c.svc.OnMessage(book)
		c.metrics.ObserveRead(obs.StreamMarketData)
	})
}

// InquiryConnector feeds the inquiry service from the inquiries file. The
// egress half of the inquiry flow is the inquiry package's own connector.
type InquiryConnector struct {
	svc     *inquiry.Service
	ref     *refdata.Service
	metrics *obs.Metrics
}

func NewInquiryConnector(svc *inquiry.Service, ref *refdata.Service, metrics *obs.Metrics) *InquiryConnector {
	return &InquiryConnector{svc: svc, ref: ref, metrics: metrics}
}

func (c *InquiryConnector) Subscribe(path string) error {
	return readRows(path, func(line string) {
		rec, err := codec.DecodeInquiryRow(line)
		if err != nil {
			logs.Errorf("skip inquiry row, err: %+v", err)
			c.metrics.ObserveSkip(obs.StreamInquiries)
			return
		}
		bond, ok := resolveBond(c.ref, rec.BondID)
		if !ok {
			logs.Errorf("skip inquiry row, unknown product: %s", rec.BondID)
			c.metrics.ObserveSkip(obs.StreamInquiries)
			return
		}

		c.svc.OnMessage(model.Inquiry{
			ID:       rec.ID,
			Product:  bond,
			Side:     rec.Side,
			Quantity: rec.Quantity,
			Price:    rec.Price,
			State:    rec.State,
		})
		c.metrics.ObserveRead(obs.StreamInquiries)
	})
}
