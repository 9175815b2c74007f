// Package refdata owns static bond reference data consulted by connectors
// that resolve a product identifier into a full bond record.
package refdata

import (
	"sort"

	"main/internal/model"
	"main/internal/service"
)

// Service is the bond reference-data service, keyed on product identifier.
type Service struct {
	cache *service.Cache[string, model.Bond]
}

// New creates an empty reference-data service.
func New() *Service {
	return &Service{cache: service.NewCache[string, model.Bond]()}
}

// Add upserts a bond record.
func (s *Service) Add(bond model.Bond) {
	s.cache.Put(bond.ID, bond)
}

// OnMessage is the connector callback; it upserts like Add.
func (s *Service) OnMessage(bond model.Bond) {
	s.Add(bond)
}

// Get returns the bond for a product identifier.
func (s *Service) Get(productID string) (model.Bond, bool) {
	return s.cache.Get(productID)
}

// BondsByTicker returns every bond carrying the ticker, ordered by maturity.
func (s *Service) BondsByTicker(ticker string) []model.Bond {
	var out []model.Bond
	s.cache.Range(func(_ string, b model.Bond) bool {
		if b.Ticker == ticker {
			out = append(out, b)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Maturity.Before(out[j].Maturity) })
	return out
}

// Len returns the number of known products.
func (s *Service) Len() int {
	return s.cache.Len()
}
