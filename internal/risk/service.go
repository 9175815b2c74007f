// Package risk maintains PV01 exposure per bond and per bucketed sector.
package risk

import (
	"github.com/shopspring/decimal"

	"main/internal/model"
	"main/internal/refdata"
	"main/internal/service"
)

// Service keeps two caches: per-bond PV01 keyed on product identifier, and
// sector PV01 keyed on sector name.
type Service struct {
	cache   *service.Cache[string, model.PV01[model.Bond]]
	buckets *service.Cache[string, model.PV01[model.BucketedSector]]
}

// New seeds the per-bond cache from the static per-unit PV01 table.
func New(ref *refdata.Service, perUnit map[string]float64) *Service {
	s := &Service{
		cache:   service.NewCache[string, model.PV01[model.Bond]](),
		buckets: service.NewCache[string, model.PV01[model.BucketedSector]](),
	}
	for productID, pv := range perUnit {
		bond, ok := ref.Get(productID)
		if !ok {
			continue
		}
		s.cache.Put(productID, model.PV01[model.Bond]{Product: bond, PerUnit: pv})
	}
	return s
}

// AddPosition folds a position update into the bond's PV01 quantity and
// notifies listeners via ProcessUpdate. The stored quantity accumulates the
// aggregate position on every update rather than replacing it.
func (s *Service) AddPosition(pos model.Position) {
	prev, ok := s.cache.Get(pos.Product.ID)
	if !ok {
		prev = model.PV01[model.Bond]{Product: pos.Product}
	}

	next := model.PV01[model.Bond]{
		Product:  prev.Product,
		PerUnit:  prev.PerUnit,
		Quantity: pos.Aggregate() + prev.Quantity,
	}
	s.cache.Put(pos.Product.ID, next)
	s.cache.FanUpdate(next)
}

// UpdateBucketedRisk recomputes the sector entry: quantity is the sum over
// constituents, per-unit PV01 their quantity-weighted mean (0 on zero total).
func (s *Service) UpdateBucketedRisk(sector model.BucketedSector) {
	var sumQty int64
	sumRisk := decimal.Zero

	for _, bond := range sector.Products {
		pv, ok := s.cache.Get(bond.ID)
		if !ok {
			continue
		}
		sumQty += pv.Quantity
		sumRisk = sumRisk.Add(decimal.NewFromFloat(pv.PerUnit).Mul(decimal.NewFromInt(pv.Quantity)))
	}

	var unit float64
	if sumQty != 0 {
		unit = sumRisk.Div(decimal.NewFromInt(sumQty)).InexactFloat64()
	}

	s.buckets.Put(sector.Name, model.PV01[model.BucketedSector]{
		Product:  sector,
		PerUnit:  unit,
		Quantity: sumQty,
	})
}

// Get returns the PV01 entry for a product identifier.
func (s *Service) Get(productID string) (model.PV01[model.Bond], bool) {
	return s.cache.Get(productID)
}

// BucketedRisk returns the PV01 entry for a sector.
func (s *Service) BucketedRisk(sector model.BucketedSector) (model.PV01[model.BucketedSector], bool) {
	return s.buckets.Get(sector.Name)
}

func (s *Service) AddListener(l service.Listener[model.PV01[model.Bond]]) {
	s.cache.AddListener(l)
}

// PositionListener feeds the risk stage from the position stage.
type PositionListener struct {
	service.NopListener[model.Position]

	risk *Service
}

func NewPositionListener(risk *Service) *PositionListener {
	return &PositionListener{risk: risk}
}

func (l *PositionListener) ProcessUpdate(pos model.Position) {
	l.risk.AddPosition(pos)
}
