// Package pricing ingests mid/spread quotes and fans them out unchanged.
package pricing

import (
	"main/internal/model"
	"main/internal/service"
)

// Service caches the latest price per product identifier.
type Service struct {
	cache *service.Cache[string, model.Price]
}

func New() *Service {
	return &Service{cache: service.NewCache[string, model.Price]()}
}

// OnMessage upserts the price and notifies listeners via ProcessAdd.
func (s *Service) OnMessage(price model.Price) {
	s.cache.Put(price.Product.ID, price)
	s.cache.FanAdd(price)
}

// Get returns the latest price for a product identifier.
func (s *Service) Get(productID string) (model.Price, bool) {
	return s.cache.Get(productID)
}

// AddListener registers a downstream listener.
func (s *Service) AddListener(l service.Listener[model.Price]) {
	s.cache.AddListener(l)
}

// Listeners returns the registered listeners.
func (s *Service) Listeners() []service.Listener[model.Price] {
	return s.cache.Listeners()
}
