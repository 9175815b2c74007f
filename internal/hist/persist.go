package hist

import (
	"github.com/yanun0323/logs"

	"main/internal/model"
	"main/internal/risk"
	"main/internal/service"
)

// Service is one historical persister: a keyed cache in front of an output
// connector. PersistData upserts and forwards.
type Service[V any] struct {
	cache   *service.Cache[string, V]
	publish func(V)
}

func NewService[V any](publish func(V)) *Service[V] {
	return &Service[V]{
		cache:   service.NewCache[string, V](),
		publish: publish,
	}
}

// PersistData upserts the value under the persist key and forwards it to the
// output connector.
func (s *Service[V]) PersistData(key string, v V) {
	s.cache.Put(key, v)
	s.publish(v)
}

// Get returns the last persisted value for a key.
func (s *Service[V]) Get(key string) (V, bool) {
	return s.cache.Get(key)
}

// PositionListener persists every position update keyed by bond.
type PositionListener struct {
	service.NopListener[model.Position]

	hist *Service[model.Position]
}

func NewPositionListener(hist *Service[model.Position]) *PositionListener {
	return &PositionListener{hist: hist}
}

func (l *PositionListener) ProcessUpdate(pos model.Position) {
	l.hist.PersistData(pos.Product.ID, pos)
}

// StreamingListener persists every published price stream keyed by bond.
type StreamingListener struct {
	service.NopListener[model.PriceStream]

	hist *Service[model.PriceStream]
}

func NewStreamingListener(hist *Service[model.PriceStream]) *StreamingListener {
	return &StreamingListener{hist: hist}
}

func (l *StreamingListener) ProcessAdd(ps model.PriceStream) {
	l.hist.PersistData(ps.Product.ID, ps)
}

// ExecutionListener persists every routed execution keyed by bond.
type ExecutionListener struct {
	service.NopListener[model.ExecutionOrder]

	hist *Service[model.ExecutionOrder]
}

func NewExecutionListener(hist *Service[model.ExecutionOrder]) *ExecutionListener {
	return &ExecutionListener{hist: hist}
}

func (l *ExecutionListener) ProcessAdd(order model.ExecutionOrder) {
	l.hist.PersistData(order.Product.ID, order)
}

// InquiryListener persists every inquiry transition. The cache is keyed by
// bond id, so later inquiries on the same bond overwrite the entry while
// each transition still reaches the file.
type InquiryListener struct {
	service.NopListener[model.Inquiry]

	hist *Service[model.Inquiry]
}

func NewInquiryListener(hist *Service[model.Inquiry]) *InquiryListener {
	return &InquiryListener{hist: hist}
}

func (l *InquiryListener) ProcessUpdate(inq model.Inquiry) {
	l.hist.PersistData(inq.Product.ID, inq)
}

// RiskService persists per-bond PV01 keyed by bond and sector PV01 keyed by
// sector name through one connector.
type RiskService struct {
	bonds   *service.Cache[string, model.PV01[model.Bond]]
	sectors *service.Cache[string, model.PV01[model.BucketedSector]]
	conn    *RiskConnector
}

func NewRiskService(conn *RiskConnector) *RiskService {
	return &RiskService{
		bonds:   service.NewCache[string, model.PV01[model.Bond]](),
		sectors: service.NewCache[string, model.PV01[model.BucketedSector]](),
		conn:    conn,
	}
}

func (s *RiskService) PersistBond(key string, pv model.PV01[model.Bond]) {
	s.bonds.Put(key, pv)
	s.conn.Publish(pv)
}

func (s *RiskService) PersistSector(key string, pv model.PV01[model.BucketedSector]) {
	s.sectors.Put(key, pv)
	s.conn.PublishSector(pv)
}

// GetBond returns the last persisted per-bond entry.
func (s *RiskService) GetBond(key string) (model.PV01[model.Bond], bool) {
	return s.bonds.Get(key)
}

// GetSector returns the last persisted sector entry.
func (s *RiskService) GetSector(key string) (model.PV01[model.BucketedSector], bool) {
	return s.sectors.Get(key)
}

// RiskListener persists each per-bond PV01 update and refreshes the sector
// containing the bond via a preconstructed bond-to-sector index.
type RiskListener struct {
	service.NopListener[model.PV01[model.Bond]]

	hist         *RiskService
	risk         *risk.Service
	sectors      []model.BucketedSector
	sectorByBond map[string]int
}

func NewRiskListener(hist *RiskService, riskSvc *risk.Service, sectors []model.BucketedSector) *RiskListener {
	index := make(map[string]int)
	for i, sector := range sectors {
		for _, bond := range sector.Products {
			index[bond.ID] = i
		}
	}
	return &RiskListener{
		hist:         hist,
		risk:         riskSvc,
		sectors:      sectors,
		sectorByBond: index,
	}
}

func (l *RiskListener) ProcessUpdate(pv model.PV01[model.Bond]) {
	l.hist.PersistBond(pv.Product.ID, pv)

	idx, ok := l.sectorByBond[pv.Product.ID]
	if !ok {
		logs.Errorf("no sector for product %s, skip bucketed risk", pv.Product.ID)
		return
	}

	sector := l.sectors[idx]
	l.risk.UpdateBucketedRisk(sector)
	if bucket, ok := l.risk.BucketedRisk(sector); ok {
		l.hist.PersistSector(sector.Name, bucket)
	}
}
