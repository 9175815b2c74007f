// Package inquiry runs the client inquiry state machine:
//
//	RECEIVED --SendQuote--> QUOTED --(publish)--> DONE
//	RECEIVED --RejectInquiry--> REJECTED
//
// The QUOTED and DONE transitions happen inside the connector's Publish,
// which re-emits into the service; listeners seeing a non-RECEIVED state do
// not quote again, so the machine terminates.
package inquiry

import (
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/service"
)

// AutoQuotePrice is the canned quote sent for every received inquiry.
const AutoQuotePrice = 100.0

// Service caches inquiries by inquiry identifier.
type Service struct {
	cache *service.Cache[string, model.Inquiry]
	conn  service.Connector[model.Inquiry]
}

func New() *Service {
	return &Service{cache: service.NewCache[string, model.Inquiry]()}
}

// SetConnector wires the egress connector used by SendQuote/RejectInquiry.
func (s *Service) SetConnector(conn service.Connector[model.Inquiry]) {
	s.conn = conn
}

// OnMessage upserts the inquiry and notifies listeners via ProcessUpdate.
func (s *Service) OnMessage(inq model.Inquiry) {
	s.cache.Put(inq.ID, inq)
	s.cache.FanUpdate(inq)
}

// SendQuote publishes the stored inquiry with the quoted price. The outbound
// inquiry carries the stored state; the QUOTED transition is applied by the
// connector on publish.
func (s *Service) SendQuote(inquiryID string, price float64) {
	inq, ok := s.cache.Get(inquiryID)
	if !ok || s.conn == nil {
		return
	}
	inq.Price = price
	s.conn.Publish(inq)
}

// RejectInquiry transitions the stored inquiry to REJECTED via the connector.
func (s *Service) RejectInquiry(inquiryID string) {
	inq, ok := s.cache.Get(inquiryID)
	if !ok || s.conn == nil {
		return
	}
	inq.State = enum.InquiryRejected
	s.conn.Publish(inq)
}

// Get returns the stored inquiry for an identifier.
func (s *Service) Get(inquiryID string) (model.Inquiry, bool) {
	return s.cache.Get(inquiryID)
}

func (s *Service) AddListener(l service.Listener[model.Inquiry]) {
	s.cache.AddListener(l)
}

// Connector is the egress half of the inquiry flow. A non-REJECTED publish
// re-emits the inquiry as QUOTED and then as DONE; a REJECTED publish
// re-emits once unchanged.
type Connector struct {
	svc *Service
}

// NewConnector wires itself into the service as its egress connector.
func NewConnector(svc *Service) *Connector {
	c := &Connector{svc: svc}
	svc.SetConnector(c)
	return c
}

func (c *Connector) Publish(inq model.Inquiry) {
	if inq.State == enum.InquiryRejected {
		c.svc.OnMessage(inq)
		return
	}

	inq.State = enum.InquiryQuoted
	c.svc.OnMessage(inq)

	inq.State = enum.InquiryDone
	c.svc.OnMessage(inq)
}

// QuoteListener quotes every inquiry that arrives in the RECEIVED state.
type QuoteListener struct {
	service.NopListener[model.Inquiry]

	svc *Service
}

func NewQuoteListener(svc *Service) *QuoteListener {
	return &QuoteListener{svc: svc}
}

func (l *QuoteListener) ProcessUpdate(inq model.Inquiry) {
	if inq.State == enum.InquiryReceived {
		l.svc.SendQuote(inq.ID, AutoQuotePrice)
	}
}
