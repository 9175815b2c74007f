// Package exec generates execution orders off tight markets (algo stage) and
// routes them to a venue (execution stage).
package exec

import (
	"fmt"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/service"
)

// TightestSpread is the trigger: an order is generated iff
// bestOffer - bestBid <= 1/128.
const TightestSpread = 1.0 / 128

// AlgoExecution wraps the execution order the algo stage generated.
type AlgoExecution struct {
	Order model.ExecutionOrder
}

// AlgoService turns qualifying order books into IOC execution orders,
// alternating sides per emission.
type AlgoService struct {
	cache   *service.Cache[string, AlgoExecution]
	counter int64
}

func NewAlgo() *AlgoService {
	return &AlgoService{cache: service.NewCache[string, AlgoExecution]()}
}

// AddOrder evaluates the book and, when the spread trigger fires, emits an
// execution order via ProcessUpdate. The counter moves once per emission,
// never per input.
func (s *AlgoService) AddOrder(book model.OrderBook) {
	best := book.BestBidOffer()
	if best.Offer.Price-best.Bid.Price > TightestSpread {
		return
	}

	bond := book.Product
	orderID := fmt.Sprintf("ORD%d%s%07d", bond.MaturityYear(), bond.Ticker, s.counter)

	side, top := enum.PricingSideOffer, best.Offer
	if s.counter%2 == 1 {
		side, top = enum.PricingSideBid, best.Bid
	}
	s.counter++

	// visible:hidden split is 1:4 of the top-of-book quantity
	visible := top.Quantity / 5
	hidden := top.Quantity - visible

	algo := AlgoExecution{Order: model.ExecutionOrder{
		Product:         bond,
		Side:            side,
		OrderID:         orderID,
		Type:            enum.OrderTypeIOC,
		Price:           top.Price,
		VisibleQuantity: visible,
		HiddenQuantity:  hidden,
		ParentOrderID:   model.ParentOrderNone,
	}}

	s.cache.Put(bond.ID, algo)
	s.cache.FanUpdate(algo)
}

// Get returns the latest generated order for a product identifier.
func (s *AlgoService) Get(productID string) (AlgoExecution, bool) {
	return s.cache.Get(productID)
}

func (s *AlgoService) AddListener(l service.Listener[AlgoExecution]) {
	s.cache.AddListener(l)
}

// AlgoBookListener feeds the algo stage from market data.
type AlgoBookListener struct {
	service.NopListener[model.OrderBook]

	algo *AlgoService
}

func NewAlgoBookListener(algo *AlgoService) *AlgoBookListener {
	return &AlgoBookListener{algo: algo}
}

func (l *AlgoBookListener) ProcessAdd(book model.OrderBook) {
	l.algo.AddOrder(book)
}
