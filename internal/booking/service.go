// Package booking books trades from the ingress file and from executions
// looped back off the venue router.
package booking

import (
	"fmt"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/service"
)

// Service caches booked trades by trade identifier and counts every booking;
// the counter drives identifier and book rotation for synthesised trades.
type Service struct {
	cache   *service.Cache[string, model.Trade]
	counter int64
}

func New() *Service {
	return &Service{cache: service.NewCache[string, model.Trade]()}
}

// OnMessage books the inbound trade.
func (s *Service) OnMessage(trade model.Trade) {
	s.BookTrade(trade)
}

// BookTrade upserts the trade, bumps the booked counter, and notifies
// listeners via ProcessUpdate.
func (s *Service) BookTrade(trade model.Trade) {
	s.cache.Put(trade.TradeID, trade)
	s.counter++
	s.cache.FanUpdate(trade)
}

// Counter returns the number of trades booked so far.
func (s *Service) Counter() int64 {
	return s.counter
}

// Get returns a booked trade by identifier.
func (s *Service) Get(tradeID string) (model.Trade, bool) {
	return s.cache.Get(tradeID)
}

func (s *Service) AddListener(l service.Listener[model.Trade]) {
	s.cache.AddListener(l)
}

// ExecutionListener synthesises a trade from every routed execution order
// and books it, cascading back into positions and risk.
type ExecutionListener struct {
	service.NopListener[model.ExecutionOrder]

	booking *Service
}

func NewExecutionListener(booking *Service) *ExecutionListener {
	return &ExecutionListener{booking: booking}
}

func (l *ExecutionListener) ProcessAdd(order model.ExecutionOrder) {
	counter := l.booking.Counter()
	bond := order.Product

	tradeID := fmt.Sprintf("TRS%d%s%07d", bond.MaturityYear(), bond.Ticker, counter)
	book := model.TradingBooks[counter%int64(len(model.TradingBooks))]

	side := enum.TradeSideBuy
	if order.Side == enum.PricingSideBid {
		side = enum.TradeSideSell
	}

	l.booking.BookTrade(model.Trade{
		Product:  bond,
		TradeID:  tradeID,
		Price:    order.Price,
		Book:     book,
		Quantity: order.VisibleQuantity + order.HiddenQuantity,
		Side:     side,
	})
}
