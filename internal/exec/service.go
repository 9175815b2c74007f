package exec

import (
	"math/rand/v2"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/service"
)

// VenuePicker selects the venue an order is routed to.
type VenuePicker func() enum.Venue

// UniformVenue picks uniformly across the routable venues.
func UniformVenue() enum.Venue {
	venues := enum.Venues()
	return venues[rand.IntN(len(venues))]
}

// Service routes generated orders to a venue and fans them out to the trade
// booking loop-back and the historical persister.
type Service struct {
	cache  *service.Cache[string, model.ExecutionOrder]
	venues *service.Cache[string, enum.Venue]
	pick   VenuePicker
}

func New(pick VenuePicker) *Service {
	if pick == nil {
		pick = UniformVenue
	}
	return &Service{
		cache:  service.NewCache[string, model.ExecutionOrder](),
		venues: service.NewCache[string, enum.Venue](),
		pick:   pick,
	}
}

// ExecuteOrder records the order against its venue tag and notifies
// listeners via ProcessAdd.
func (s *Service) ExecuteOrder(order model.ExecutionOrder, venue enum.Venue) {
	s.cache.Put(order.Product.ID, order)
	s.venues.Put(order.Product.ID, venue)
	s.cache.FanAdd(order)
}

// Get returns the latest executed order for a product identifier.
func (s *Service) Get(productID string) (model.ExecutionOrder, bool) {
	return s.cache.Get(productID)
}

// Venue returns the venue the product's latest order was routed to.
func (s *Service) Venue(productID string) (enum.Venue, bool) {
	return s.venues.Get(productID)
}

func (s *Service) AddListener(l service.Listener[model.ExecutionOrder]) {
	s.cache.AddListener(l)
}

// AlgoListener feeds the execution stage from the algo stage.
type AlgoListener struct {
	service.NopListener[AlgoExecution]

	exec *Service
}

func NewAlgoListener(exec *Service) *AlgoListener {
	return &AlgoListener{exec: exec}
}

func (l *AlgoListener) ProcessUpdate(algo AlgoExecution) {
	l.exec.ExecuteOrder(algo.Order, l.exec.pick())
}
