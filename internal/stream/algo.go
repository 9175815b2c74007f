// Package stream derives two-way price streams from prices (algo stage) and
// republishes them for downstream persistence (streaming stage).
package stream

import (
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/service"
)

// Algo wraps the two-way stream the algo stage derived from one price.
type Algo struct {
	Stream model.PriceStream
}

// AlgoService builds a PriceStream per inbound price. Visible quantity
// alternates 1M/2M across successive inputs, hidden is twice visible.
type AlgoService struct {
	cache   *service.Cache[string, Algo]
	counter int64
}

func NewAlgo() *AlgoService {
	return &AlgoService{cache: service.NewCache[string, Algo]()}
}

// AddStream derives the stream for a price, upserts it, and notifies
// listeners via ProcessUpdate.
func (s *AlgoService) AddStream(price model.Price) {
	visible := int64(1_000_000)
	if s.counter%2 == 1 {
		visible = 2_000_000
	}
	hidden := 2 * visible
	s.counter++

	algo := Algo{Stream: model.PriceStream{
		Product: price.Product,
		Bid: model.PriceStreamOrder{
			Price:           price.Bid(),
			VisibleQuantity: visible,
			HiddenQuantity:  hidden,
			Side:            enum.PricingSideBid,
		},
		Offer: model.PriceStreamOrder{
			Price:           price.Offer(),
			VisibleQuantity: visible,
			HiddenQuantity:  hidden,
			Side:            enum.PricingSideOffer,
		},
	}}

	s.cache.Put(price.Product.ID, algo)
	s.cache.FanUpdate(algo)
}

// Get returns the latest algo stream for a product identifier.
func (s *AlgoService) Get(productID string) (Algo, bool) {
	return s.cache.Get(productID)
}

func (s *AlgoService) AddListener(l service.Listener[Algo]) {
	s.cache.AddListener(l)
}

// AlgoPriceListener feeds the algo stage from the pricing stage.
type AlgoPriceListener struct {
	service.NopListener[model.Price]

	algo *AlgoService
}

func NewAlgoPriceListener(algo *AlgoService) *AlgoPriceListener {
	return &AlgoPriceListener{algo: algo}
}

func (l *AlgoPriceListener) ProcessAdd(price model.Price) {
	l.algo.AddStream(price)
}
