package gui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"main/internal/model"
	"main/internal/model/enum"
)

var testBond = model.Bond{ID: "9128283H1", IDType: enum.IDTypeCUSIP, Ticker: "T"}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type publishCollector struct {
	prices []model.Price
}

func (c *publishCollector) Publish(price model.Price) {
	c.prices = append(c.prices, price)
}

func TestThrottleDropsInsideInterval(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	sink := &publishCollector{}
	svc := New(300*time.Millisecond, DefaultMaxPublishes, sink, clock.Now)

	// nothing is published before a full interval has elapsed
	svc.AddPrice(model.Price{Product: testBond, Mid: 100})
	assert.Empty(t, sink.prices)

	clock.Advance(300 * time.Millisecond)
	svc.AddPrice(model.Price{Product: testBond, Mid: 100.5})
	assert.Len(t, sink.prices, 1)

	// the next update inside the window is dropped, not queued
	clock.Advance(100 * time.Millisecond)
	svc.AddPrice(model.Price{Product: testBond, Mid: 101})
	assert.Len(t, sink.prices, 1)
	assert.Equal(t, 2, svc.Dropped())

	clock.Advance(200 * time.Millisecond)
	svc.AddPrice(model.Price{Product: testBond, Mid: 101.5})
	assert.Len(t, sink.prices, 2)
	assert.Equal(t, 101.5, sink.prices[1].Mid)
}

func TestThrottleCapsPublications(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	sink := &publishCollector{}
	svc := New(time.Millisecond, 100, sink, clock.Now)

	for i := 0; i < 500; i++ {
		clock.Advance(time.Millisecond)
		svc.AddPrice(model.Price{Product: testBond, Mid: 100})
	}

	assert.Len(t, sink.prices, 100)
	assert.Equal(t, 100, svc.Published())
	assert.Equal(t, 400, svc.Dropped())
}

func TestThrottleStoresLastPublished(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	sink := &publishCollector{}
	svc := New(time.Millisecond, 10, sink, clock.Now)

	clock.Advance(time.Millisecond)
	svc.AddPrice(model.Price{Product: testBond, Mid: 100.25})

	price, ok := svc.Get(testBond.ID)
	assert.True(t, ok)
	assert.Equal(t, 100.25, price.Mid)
}
