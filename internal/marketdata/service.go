// Package marketdata caches order-book depth snapshots and collapses stacks
// by price on demand.
package marketdata

import (
	"main/internal/model"
	"main/internal/service"
)

// Service caches the latest order book per product identifier.
type Service struct {
	cache *service.Cache[string, model.OrderBook]
}

func New() *Service {
	return &Service{cache: service.NewCache[string, model.OrderBook]()}
}

// OnMessage upserts the book and notifies listeners via ProcessAdd.
func (s *Service) OnMessage(book model.OrderBook) {
	s.cache.Put(book.Product.ID, book)
	s.cache.FanAdd(book.Clone())
}

// Get returns a copy of the stored book for a product identifier.
func (s *Service) Get(productID string) (model.OrderBook, bool) {
	book, ok := s.cache.Get(productID)
	if !ok {
		return model.OrderBook{}, false
	}
	return book.Clone(), true
}

// BestBidOffer returns the top of book for a product identifier.
func (s *Service) BestBidOffer(productID string) (model.BidOffer, bool) {
	book, ok := s.cache.Get(productID)
	if !ok {
		return model.BidOffer{}, false
	}
	return book.BestBidOffer(), true
}

// AggregateDepth collapses each side by price, summing quantities at equal
// prices, and replaces the stored book. Within a side the collapsed orders
// keep first-seen price order.
func (s *Service) AggregateDepth(productID string) (model.OrderBook, bool) {
	book, ok := s.cache.Get(productID)
	if !ok {
		return model.OrderBook{}, false
	}

	aggregated := model.OrderBook{
		Product: book.Product,
		Bids:    aggregateSide(book.Bids),
		Offers:  aggregateSide(book.Offers),
	}
	s.cache.Put(productID, aggregated)
	return aggregated.Clone(), true
}

func aggregateSide(orders []model.Order) []model.Order {
	byPrice := make(map[float64]int, len(orders))
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if idx, ok := byPrice[o.Price]; ok {
			out[idx].Quantity += o.Quantity
			continue
		}
		byPrice[o.Price] = len(out)
		out = append(out, o)
	}
	return out
}

func (s *Service) AddListener(l service.Listener[model.OrderBook]) {
	s.cache.AddListener(l)
}
