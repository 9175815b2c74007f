package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/service"
)

var testBond = model.Bond{ID: "9128283H1", IDType: enum.IDTypeCUSIP, Ticker: "T"}

type bookCollector struct {
	service.NopListener[model.OrderBook]

	books []model.OrderBook
}

func (c *bookCollector) ProcessAdd(book model.OrderBook) {
	c.books = append(c.books, book)
}

func TestOnMessageFansAdd(t *testing.T) {
	svc := New()
	collector := &bookCollector{}
	svc.AddListener(collector)

	svc.OnMessage(model.OrderBook{
		Product: testBond,
		Bids:    []model.Order{{Price: 99.5, Quantity: 1_000_000, Side: enum.PricingSideBid}},
		Offers:  []model.Order{{Price: 99.6, Quantity: 1_000_000, Side: enum.PricingSideOffer}},
	})

	require.Len(t, collector.books, 1)
	stored, ok := svc.Get(testBond.ID)
	require.True(t, ok)
	assert.Equal(t, 99.5, stored.Bids[0].Price)
}

func TestBestBidOffer(t *testing.T) {
	svc := New()
	svc.OnMessage(model.OrderBook{
		Product: testBond,
		Bids: []model.Order{
			{Price: 99, Quantity: 1, Side: enum.PricingSideBid},
			{Price: 100, Quantity: 2, Side: enum.PricingSideBid},
			{Price: 98, Quantity: 3, Side: enum.PricingSideBid},
		},
		Offers: []model.Order{
			{Price: 101, Quantity: 1, Side: enum.PricingSideOffer},
			{Price: 100.5, Quantity: 2, Side: enum.PricingSideOffer},
		},
	})

	best, ok := svc.BestBidOffer(testBond.ID)
	require.True(t, ok)
	assert.Equal(t, 100.0, best.Bid.Price)
	assert.Equal(t, 100.5, best.Offer.Price)
}

func TestAggregateDepth(t *testing.T) {
	svc := New()
	svc.OnMessage(model.OrderBook{
		Product: testBond,
		Bids: []model.Order{
			{Price: 100, Quantity: 1_000_000, Side: enum.PricingSideBid},
			{Price: 100, Quantity: 2_000_000, Side: enum.PricingSideBid},
			{Price: 99, Quantity: 1_000_000, Side: enum.PricingSideBid},
		},
		Offers: []model.Order{
			{Price: 101, Quantity: 500_000, Side: enum.PricingSideOffer},
			{Price: 101, Quantity: 500_000, Side: enum.PricingSideOffer},
		},
	})

	book, ok := svc.AggregateDepth(testBond.ID)
	require.True(t, ok)

	// exactly two bid levels remain, 3M at 100 and 1M at 99
	require.Len(t, book.Bids, 2)
	byPrice := map[float64]int64{}
	for _, o := range book.Bids {
		if _, dup := byPrice[o.Price]; dup {
			t.Fatalf("duplicate bid price after aggregation: %v", o.Price)
		}
		byPrice[o.Price] = o.Quantity
	}
	assert.Equal(t, int64(3_000_000), byPrice[100])
	assert.Equal(t, int64(1_000_000), byPrice[99])

	require.Len(t, book.Offers, 1)
	assert.Equal(t, int64(1_000_000), book.Offers[0].Quantity)

	// the stored book is replaced by the aggregated one
	stored, ok := svc.Get(testBond.ID)
	require.True(t, ok)
	assert.Len(t, stored.Bids, 2)
}
