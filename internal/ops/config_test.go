package ops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultResolves(t *testing.T) {
	loaded, err := Resolve(Default())
	require.NoError(t, err)

	assert.Equal(t, 300*time.Millisecond, loaded.Throttle)
	assert.Equal(t, 100, loaded.MaxPublishes)
	assert.Equal(t, "T", loaded.Ticker)
	assert.Equal(t, 6, loaded.RefData.Len())
	assert.Len(t, loaded.Sectors, 3)

	bond, ok := loaded.RefData.Get("912810RZ3")
	require.True(t, ok)
	assert.Equal(t, 2047, bond.MaturityYear())
	assert.Equal(t, "T", bond.Ticker)

	bonds := loaded.RefData.BondsByTicker("T")
	require.Len(t, bonds, 6)
	assert.Equal(t, "9128283H1", bonds[0].ID, "sorted by maturity")
	assert.Equal(t, "912810RZ3", bonds[5].ID)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"ticker": "T",
		"gui": {"throttleMillis": 150, "maxPublishes": 10},
		"bonds": [{"id": "9128283H1", "idType": "CUSIP", "ticker": "T", "coupon": 1.75, "maturity": "2019-11-30"}],
		"pv01": {"9128283H1": 0.0185},
		"sectors": {"FrontEnd": ["9128283H1"]}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, loaded.Throttle)
	assert.Equal(t, 10, loaded.MaxPublishes)
	assert.Equal(t, 1, loaded.RefData.Len())
	require.Len(t, loaded.Sectors, 1)
	assert.Equal(t, "FrontEnd", loaded.Sectors[0].Name)
}

func TestResolveRejectsBadConfig(t *testing.T) {
	testCases := []struct {
		desc   string
		mutate func(*FileConfig)
	}{
		{"empty ticker", func(c *FileConfig) { c.Ticker = "" }},
		{"zero throttle", func(c *FileConfig) { c.GUI.ThrottleMillis = 0 }},
		{"zero publish cap", func(c *FileConfig) { c.GUI.MaxPublishes = 0 }},
		{"no bonds", func(c *FileConfig) { c.Bonds = nil }},
		{"pv01 for unknown product", func(c *FileConfig) { c.PV01["UNKNOWN01"] = 0.5 }},
		{"sector with unknown product", func(c *FileConfig) { c.Sectors["Odd"] = []string{"UNKNOWN01"} }},
		{"bad maturity", func(c *FileConfig) { c.Bonds[0].Maturity = "30-11-2019" }},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if _, err := Resolve(cfg); err == nil {
				t.Fatal("expected resolve error")
			}
		})
	}
}
