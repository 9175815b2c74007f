// Package gui throttles price updates for GUI publication. The throttle
// drops rather than queues, and stops after a fixed number of publications.
package gui

import (
	"time"

	"main/internal/model"
	"main/internal/service"
)

// DefaultMaxPublishes caps the number of rows the GUI ever receives.
const DefaultMaxPublishes = 100

// Service forwards at most one price per throttle interval to its connector.
type Service struct {
	cache        *service.Cache[string, model.Price]
	conn         service.Connector[model.Price]
	interval     time.Duration
	maxPublishes int
	now          func() time.Time

	last      time.Time
	published int
	dropped   int
}

// New creates a throttled GUI service. now may be nil for wall-clock time.
func New(interval time.Duration, maxPublishes int, conn service.Connector[model.Price], now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		cache:        service.NewCache[string, model.Price](),
		conn:         conn,
		interval:     interval,
		maxPublishes: maxPublishes,
		now:          now,
		last:         now(),
	}
}

// AddPrice applies the throttle gate: publish when a full interval has
// passed since the last publication and the cap is not exhausted, otherwise
// drop.
func (s *Service) AddPrice(price model.Price) {
	now := s.now()
	if s.published >= s.maxPublishes || now.Sub(s.last) < s.interval {
		s.dropped++
		return
	}

	s.cache.Put(price.Product.ID, price)
	s.conn.Publish(price)
	s.last = now
	s.published++
}

// Get returns the last published price for a product identifier.
func (s *Service) Get(productID string) (model.Price, bool) {
	return s.cache.Get(productID)
}

// Published returns the number of prices forwarded so far.
func (s *Service) Published() int {
	return s.published
}

// Dropped returns the number of prices gated out by the throttle.
func (s *Service) Dropped() int {
	return s.dropped
}

// PriceListener feeds the GUI stage from the pricing stage.
type PriceListener struct {
	service.NopListener[model.Price]

	gui *Service
}

func NewPriceListener(gui *Service) *PriceListener {
	return &PriceListener{gui: gui}
}

func (l *PriceListener) ProcessAdd(price model.Price) {
	l.gui.AddPrice(price)
}
