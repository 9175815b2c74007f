package hist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/refdata"
	"main/internal/risk"
)

var (
	fixedNow = func() time.Time {
		return time.Date(2026, time.August, 6, 9, 30, 0, 0, time.UTC)
	}
	testBond = model.Bond{
		ID: "9128283H1", IDType: enum.IDTypeCUSIP, Ticker: "T",
		Maturity: time.Date(2019, time.November, 30, 0, 0, 0, 0, time.UTC),
	}
)

func newWriter(t *testing.T, header string) (*LineWriter, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.txt")
	w, err := NewLineWriter(path, header, fixedNow)
	require.NoError(t, err)
	return w, path
}

func readLines(t *testing.T, w *LineWriter, path string) []string {
	t.Helper()
	require.NoError(t, w.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestLineWriterTimestampPrefix(t *testing.T) {
	w, path := newWriter(t, "Time,Field")
	require.NoError(t, w.Append("value"))

	lines := readLines(t, w, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "Time,Field", lines[0])
	assert.Equal(t, "08/06/2026 09:30:00,value", lines[1])
}

func TestLineWriterOpenFailure(t *testing.T) {
	if _, err := NewLineWriter(filepath.Join(t.TempDir(), "missing", "out.txt"), "h", fixedNow); err == nil {
		t.Fatal("expected error opening file in missing directory")
	}
}

func TestPositionRowsExpandBooks(t *testing.T) {
	w, path := newWriter(t, PositionHeader)
	conn := NewPositionConnector(w)

	pos := model.NewPosition(testBond)
	pos.Add("TRSY1", 1_000_000)
	pos.Add("TRSY2", -400_000)
	conn.Publish(pos)

	lines := readLines(t, w, path)
	require.Len(t, lines, 5)
	assert.Equal(t, "08/06/2026 09:30:00,CUSIP,9128283H1,TRSY1,1000000", lines[1])
	assert.Equal(t, "08/06/2026 09:30:00,CUSIP,9128283H1,TRSY2,-400000", lines[2])
	assert.Equal(t, "08/06/2026 09:30:00,CUSIP,9128283H1,TRSY3,0", lines[3])
	assert.Equal(t, "08/06/2026 09:30:00,CUSIP,9128283H1,AGGREGATED,600000", lines[4])
}

func TestStreamingRowUsesOfferOrder(t *testing.T) {
	w, path := newWriter(t, StreamingHeader)
	conn := NewStreamingConnector(w)

	conn.Publish(model.PriceStream{
		Product: testBond,
		Bid:     model.PriceStreamOrder{Price: 99.5, VisibleQuantity: 1_000_000, HiddenQuantity: 2_000_000, Side: enum.PricingSideBid},
		Offer:   model.PriceStreamOrder{Price: 99.75, VisibleQuantity: 3_000_000, HiddenQuantity: 6_000_000, Side: enum.PricingSideOffer},
	})

	lines := readLines(t, w, path)
	require.Len(t, lines, 2)
	// offer columns come from the offer order, not the bid order
	assert.Equal(t, "08/06/2026 09:30:00,CUSIP,9128283H1,99.500000,1000000,2000000,99.750000,3000000,6000000", lines[1])
}

func TestExecutionRow(t *testing.T) {
	w, path := newWriter(t, ExecutionHeader)
	conn := NewExecutionConnector(w)

	conn.Publish(model.ExecutionOrder{
		Product:         testBond,
		Side:            enum.PricingSideOffer,
		OrderID:         "ORD2019T0000000",
		Type:            enum.OrderTypeIOC,
		Price:           100 + 5.0/256,
		VisibleQuantity: 400_000,
		HiddenQuantity:  1_600_000,
		ParentOrderID:   model.ParentOrderNone,
	})

	lines := readLines(t, w, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "08/06/2026 09:30:00,IOC,ORD2019T0000000,CUSIP,9128283H1,OFFER,400000,1600000,100-005,FALSE,N/A", lines[1])
}

func TestInquiryRow(t *testing.T) {
	w, path := newWriter(t, InquiryHeader)
	conn := NewInquiryConnector(w)

	conn.Publish(model.Inquiry{
		ID: "I1", Product: testBond, Side: enum.TradeSideBuy,
		Quantity: 1_000_000, Price: 100, State: enum.InquiryDone,
	})

	lines := readLines(t, w, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "08/06/2026 09:30:00,I1,CUSIP,9128283H1,BUY,1000000,100-000,DONE", lines[1])
}

func TestGUIRowFractionalMid(t *testing.T) {
	w, path := newWriter(t, GUIHeader)
	conn := NewGUIConnector(w)

	conn.Publish(model.Price{Product: testBond, Mid: 100.015625, Spread: 1.0 / 128})

	lines := readLines(t, w, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "08/06/2026 09:30:00,CUSIP,9128283H1,100-00+", lines[1])
}

func TestInquiryPersisterKeyedByBond(t *testing.T) {
	w, _ := newWriter(t, InquiryHeader)
	svc := NewService[model.Inquiry](NewInquiryConnector(w).Publish)
	listener := NewInquiryListener(svc)

	listener.ProcessUpdate(model.Inquiry{ID: "I1", Product: testBond, State: enum.InquiryReceived})
	listener.ProcessUpdate(model.Inquiry{ID: "I2", Product: testBond, State: enum.InquiryDone})

	// the second inquiry on the same bond overwrites the cache entry
	stored, ok := svc.Get(testBond.ID)
	require.True(t, ok)
	assert.Equal(t, "I2", stored.ID)
	require.NoError(t, w.Close())
}

func TestRiskListenerWritesBondAndSector(t *testing.T) {
	ref := refdata.New()
	ref.Add(testBond)
	riskSvc := risk.New(ref, map[string]float64{testBond.ID: 0.0185})

	w, path := newWriter(t, RiskHeader)
	histSvc := NewRiskService(NewRiskConnector(w))
	sector := model.BucketedSector{Name: "FrontEnd", Products: []model.Bond{testBond}}
	riskSvc.AddListener(NewRiskListener(histSvc, riskSvc, []model.BucketedSector{sector}))

	pos := model.NewPosition(testBond)
	pos.Add("TRSY1", 1_000_000)
	riskSvc.AddPosition(pos)

	lines := readLines(t, w, path)
	require.Len(t, lines, 3)
	assert.Equal(t, "08/06/2026 09:30:00,CUSIP,9128283H1,0.018500,1000000", lines[1])
	assert.Equal(t, "08/06/2026 09:30:00,Bucketed Sector,FrontEnd,0.018500,1000000", lines[2])

	bucket, ok := histSvc.GetSector("FrontEnd")
	require.True(t, ok)
	assert.Equal(t, int64(1_000_000), bucket.Quantity)
}
