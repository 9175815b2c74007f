package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/refdata"
	"main/internal/service"
)

const (
	bond2Y  = "9128283H1"
	bond3Y  = "9128283G3"
	bond30Y = "912810RZ3"
)

func testRef() *refdata.Service {
	ref := refdata.New()
	ref.Add(model.Bond{ID: bond2Y, IDType: enum.IDTypeCUSIP, Ticker: "T",
		Maturity: time.Date(2019, time.November, 30, 0, 0, 0, 0, time.UTC)})
	ref.Add(model.Bond{ID: bond3Y, IDType: enum.IDTypeCUSIP, Ticker: "T",
		Maturity: time.Date(2020, time.November, 15, 0, 0, 0, 0, time.UTC)})
	ref.Add(model.Bond{ID: bond30Y, IDType: enum.IDTypeCUSIP, Ticker: "T",
		Maturity: time.Date(2047, time.November, 15, 0, 0, 0, 0, time.UTC)})
	return ref
}

var perUnit = map[string]float64{
	bond2Y:  0.0185,
	bond3Y:  0.01034,
	bond30Y: 0.0275,
}

func positionWith(ref *refdata.Service, id string, book string, qty int64) model.Position {
	bond, _ := ref.Get(id)
	pos := model.NewPosition(bond)
	pos.Add(book, qty)
	return pos
}

type pv01Collector struct {
	service.NopListener[model.PV01[model.Bond]]

	updates []model.PV01[model.Bond]
}

func (c *pv01Collector) ProcessUpdate(pv model.PV01[model.Bond]) {
	c.updates = append(c.updates, pv)
}

func TestAddPositionFansUpdate(t *testing.T) {
	ref := testRef()
	svc := New(ref, perUnit)
	collector := &pv01Collector{}
	svc.AddListener(collector)

	svc.AddPosition(positionWith(ref, bond2Y, "TRSY1", 1_000_000))

	require.Len(t, collector.updates, 1)
	assert.Equal(t, 0.0185, collector.updates[0].PerUnit)
	assert.Equal(t, int64(1_000_000), collector.updates[0].Quantity)
}

func TestRiskAccumulates(t *testing.T) {
	// quantity folds the aggregate into the previous value on every update
	// rather than replacing it
	ref := testRef()
	svc := New(ref, perUnit)

	pos := positionWith(ref, bond2Y, "TRSY1", 1_000_000)
	svc.AddPosition(pos)
	pv, ok := svc.Get(bond2Y)
	require.True(t, ok)
	assert.Equal(t, int64(1_000_000), pv.Quantity)

	pos.Add("TRSY2", 500_000)
	svc.AddPosition(pos)
	pv, ok = svc.Get(bond2Y)
	require.True(t, ok)
	assert.Equal(t, int64(2_500_000), pv.Quantity)
}

func TestBucketedRiskWeightedMean(t *testing.T) {
	ref := testRef()
	svc := New(ref, perUnit)

	svc.AddPosition(positionWith(ref, bond2Y, "TRSY1", 3_000_000))
	svc.AddPosition(positionWith(ref, bond3Y, "TRSY1", 1_000_000))

	frontEnd := model.BucketedSector{Name: "FrontEnd"}
	for _, id := range []string{bond2Y, bond3Y} {
		bond, _ := ref.Get(id)
		frontEnd.Products = append(frontEnd.Products, bond)
	}
	svc.UpdateBucketedRisk(frontEnd)

	bucket, ok := svc.BucketedRisk(frontEnd)
	require.True(t, ok)
	assert.Equal(t, int64(4_000_000), bucket.Quantity)

	expected := (0.0185*3_000_000 + 0.01034*1_000_000) / 4_000_000
	assert.InDelta(t, expected, bucket.PerUnit, 1e-12)
}

func TestBucketedRiskZeroQuantity(t *testing.T) {
	ref := testRef()
	svc := New(ref, perUnit)

	svc.AddPosition(positionWith(ref, bond2Y, "TRSY1", 1_000_000))
	svc.AddPosition(positionWith(ref, bond3Y, "TRSY1", -1_000_000))

	frontEnd := model.BucketedSector{Name: "FrontEnd"}
	for _, id := range []string{bond2Y, bond3Y} {
		bond, _ := ref.Get(id)
		frontEnd.Products = append(frontEnd.Products, bond)
	}
	svc.UpdateBucketedRisk(frontEnd)

	bucket, ok := svc.BucketedRisk(frontEnd)
	require.True(t, ok)
	assert.Equal(t, int64(0), bucket.Quantity)
	assert.Equal(t, 0.0, bucket.PerUnit)
}

func TestUnknownProductIgnoredInSeed(t *testing.T) {
	ref := testRef()
	svc := New(ref, map[string]float64{"UNKNOWN01": 0.5})
	if _, ok := svc.Get("UNKNOWN01"); ok {
		t.Fatal("seed should skip products missing from reference data")
	}
}
