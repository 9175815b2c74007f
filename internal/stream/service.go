package stream

import (
	"main/internal/model"
	"main/internal/service"
)

// Service republishes algo streams as plain price streams so persisters can
// attach without coupling to the algo stage.
type Service struct {
	cache *service.Cache[string, model.PriceStream]
}

func New() *Service {
	return &Service{cache: service.NewCache[string, model.PriceStream]()}
}

// PublishPrice upserts the stream and notifies listeners via ProcessAdd.
func (s *Service) PublishPrice(ps model.PriceStream) {
	s.cache.Put(ps.Product.ID, ps)
	s.cache.FanAdd(ps)
}

// Get returns the latest stream for a product identifier.
func (s *Service) Get(productID string) (model.PriceStream, bool) {
	return s.cache.Get(productID)
}

func (s *Service) AddListener(l service.Listener[model.PriceStream]) {
	s.cache.AddListener(l)
}

// AlgoListener feeds the streaming stage from the algo stage.
type AlgoListener struct {
	service.NopListener[Algo]

	stream *Service
}

func NewAlgoListener(stream *Service) *AlgoListener {
	return &AlgoListener{stream: stream}
}

func (l *AlgoListener) ProcessUpdate(algo Algo) {
	l.stream.PublishPrice(algo.Stream)
}
