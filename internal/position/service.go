// Package position reduces booked trades into signed per-book positions.
package position

import (
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/refdata"
	"main/internal/service"
)

// Service caches one Position per product identifier, seeded with a zero
// position for every bond carrying the configured ticker.
type Service struct {
	cache *service.Cache[string, model.Position]
}

func New(ref *refdata.Service, ticker string) *Service {
	s := &Service{cache: service.NewCache[string, model.Position]()}
	for _, bond := range ref.BondsByTicker(ticker) {
		s.cache.Put(bond.ID, model.NewPosition(bond))
	}
	return s
}

// AddTrade applies the trade's signed quantity to its book and notifies
// listeners via ProcessUpdate with a snapshot copy.
func (s *Service) AddTrade(trade model.Trade) {
	pos, ok := s.cache.Get(trade.Product.ID)
	if !ok {
		pos = model.NewPosition(trade.Product)
	}

	quantity := trade.Quantity
	if trade.Side == enum.TradeSideSell {
		quantity = -quantity
	}
	pos.Add(trade.Book, quantity)

	s.cache.Put(trade.Product.ID, pos)
	s.cache.FanUpdate(pos.Clone())
}

// Get returns a snapshot of the position for a product identifier.
func (s *Service) Get(productID string) (model.Position, bool) {
	pos, ok := s.cache.Get(productID)
	if !ok {
		return model.Position{}, false
	}
	return pos.Clone(), true
}

func (s *Service) AddListener(l service.Listener[model.Position]) {
	s.cache.AddListener(l)
}

// TradeListener feeds the position stage from trade booking.
type TradeListener struct {
	service.NopListener[model.Trade]

	positions *Service
}

func NewTradeListener(positions *Service) *TradeListener {
	return &TradeListener{positions: positions}
}

func (l *TradeListener) ProcessUpdate(trade model.Trade) {
	l.positions.AddTrade(trade)
}
