// Package ops loads and resolves the pipeline configuration.
package ops

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/refdata"
)

const maturityLayout = "2006-01-02"

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Inputs   InputsConfig        `json:"inputs"`
	Outputs  OutputsConfig       `json:"outputs"`
	GUI      GUIConfig           `json:"gui"`
	Ticker   string              `json:"ticker"`
	Bonds    []BondConfig        `json:"bonds"`
	PV01     map[string]float64  `json:"pv01"`
	Sectors  map[string][]string `json:"sectors"`
	Postgres *PostgresConfig     `json:"postgres"`
}

// InputsConfig holds the four ingress file paths.
type InputsConfig struct {
	Trades     string `json:"trades"`
	Prices     string `json:"prices"`
	MarketData string `json:"marketData"`
	Inquiries  string `json:"inquiries"`
}

// OutputsConfig holds the six egress file paths.
type OutputsConfig struct {
	Positions  string `json:"positions"`
	Risk       string `json:"risk"`
	Streaming  string `json:"streaming"`
	GUI        string `json:"gui"`
	Executions string `json:"executions"`
	Inquiries  string `json:"inquiries"`
}

// GUIConfig controls the GUI throttle.
type GUIConfig struct {
	ThrottleMillis int `json:"throttleMillis"`
	MaxPublishes   int `json:"maxPublishes"`
}

// BondConfig describes one reference-data row.
type BondConfig struct {
	ID       string  `json:"id"`
	IDType   string  `json:"idType"`
	Ticker   string  `json:"ticker"`
	Coupon   float64 `json:"coupon"`
	Maturity string  `json:"maturity"`
}

// PostgresConfig points reference-data loading at a database instead of the
// inline bond list.
type PostgresConfig struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	User       string `json:"user"`
	Password   string `json:"password"`
	Database   string `json:"database"`
	SSLMode    string `json:"sslMode"`
	ConnString string `json:"connString"`
}

// Loaded is the resolved configuration ready for wiring.
type Loaded struct {
	Inputs       InputsConfig
	Outputs      OutputsConfig
	Throttle     time.Duration
	MaxPublishes int
	Ticker       string
	RefData      *refdata.Service
	PV01         map[string]float64
	Sectors      []model.BucketedSector
}

// Default returns the built-in configuration: the six on-the-run treasuries,
// their per-unit PV01 values, and the FrontEnd/Belly/LongEnd buckets.
func Default() FileConfig {
	return FileConfig{
		Inputs: InputsConfig{
			Trades:     "data/trades.txt",
			Prices:     "data/prices.txt",
			MarketData: "data/marketdata.txt",
			Inquiries:  "data/inquiries.txt",
		},
		Outputs: OutputsConfig{
			Positions:  "data/position.out",
			Risk:       "data/risk.out",
			Streaming:  "data/streaming.out",
			GUI:        "data/gui.out",
			Executions: "data/execution.out",
			Inquiries:  "data/allinquiry.out",
		},
		GUI:    GUIConfig{ThrottleMillis: 300, MaxPublishes: 100},
		Ticker: "T",
		Bonds: []BondConfig{
			{ID: "9128283H1", IDType: "CUSIP", Ticker: "T", Coupon: 1.750, Maturity: "2019-11-30"},
			{ID: "9128283G3", IDType: "CUSIP", Ticker: "T", Coupon: 1.750, Maturity: "2020-11-15"},
			{ID: "912828M80", IDType: "CUSIP", Ticker: "T", Coupon: 2.000, Maturity: "2022-11-30"},
			{ID: "9128283J7", IDType: "CUSIP", Ticker: "T", Coupon: 2.125, Maturity: "2024-11-30"},
			{ID: "9128283F5", IDType: "CUSIP", Ticker: "T", Coupon: 2.250, Maturity: "2027-11-15"},
			{ID: "912810RZ3", IDType: "CUSIP", Ticker: "T", Coupon: 2.750, Maturity: "2047-11-15"},
		},
		PV01: map[string]float64{
			"9128283H1": 0.01850,
			"9128283G3": 0.01034,
			"912828M80": 0.01760,
			"9128283J7": 0.02215,
			"9128283F5": 0.02020,
			"912810RZ3": 0.02750,
		},
		Sectors: map[string][]string{
			"FrontEnd": {"9128283H1", "9128283G3"},
			"Belly":    {"912828M80", "9128283J7", "9128283F5"},
			"LongEnd":  {"912810RZ3"},
		},
	}
}

// Load reads a JSON config file and resolves it. An empty path resolves the
// built-in defaults. The pv01 and sectors tables from the file replace the
// defaults rather than merging into them.
func Load(path string) (Loaded, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Loaded{}, err
		}
		defaults := cfg
		cfg.PV01, cfg.Sectors = nil, nil
		if err := sonic.ConfigFastest.Unmarshal(data, &cfg); err != nil {
			return Loaded{}, err
		}
		if cfg.PV01 == nil {
			cfg.PV01 = defaults.PV01
		}
		if cfg.Sectors == nil {
			cfg.Sectors = defaults.Sectors
		}
	}
	return Resolve(cfg)
}

// Resolve validates the config and builds the reference-data service and
// sector set.
func Resolve(cfg FileConfig) (Loaded, error) {
	if cfg.Ticker == "" {
		return Loaded{}, fmt.Errorf("ticker is empty")
	}
	if cfg.GUI.ThrottleMillis <= 0 {
		return Loaded{}, fmt.Errorf("gui throttle must be > 0")
	}
	if cfg.GUI.MaxPublishes <= 0 {
		return Loaded{}, fmt.Errorf("gui max publishes must be > 0")
	}

	ref := refdata.New()
	if cfg.Postgres != nil {
		count, err := refdata.LoadFromPostgres(ref, refdata.PGOption{
			Host:       cfg.Postgres.Host,
			Port:       cfg.Postgres.Port,
			User:       cfg.Postgres.User,
			Password:   cfg.Postgres.Password,
			Database:   cfg.Postgres.Database,
			SSLMode:    cfg.Postgres.SSLMode,
			ConnString: cfg.Postgres.ConnString,
		})
		if err != nil {
			return Loaded{}, fmt.Errorf("load reference data: %w", err)
		}
		if count == 0 {
			return Loaded{}, fmt.Errorf("reference data source is empty")
		}
	} else {
		for _, bc := range cfg.Bonds {
			bond, err := buildBond(bc)
			if err != nil {
				return Loaded{}, err
			}
			ref.Add(bond)
		}
	}
	if ref.Len() == 0 {
		return Loaded{}, fmt.Errorf("no reference data configured")
	}

	sectors, err := buildSectors(cfg.Sectors, ref)
	if err != nil {
		return Loaded{}, err
	}

	for productID := range cfg.PV01 {
		if _, ok := ref.Get(productID); !ok {
			return Loaded{}, fmt.Errorf("pv01 for unknown product: %s", productID)
		}
	}

	return Loaded{
		Inputs:       cfg.Inputs,
		Outputs:      cfg.Outputs,
		Throttle:     time.Duration(cfg.GUI.ThrottleMillis) * time.Millisecond,
		MaxPublishes: cfg.GUI.MaxPublishes,
		Ticker:       cfg.Ticker,
		RefData:      ref,
		PV01:         cfg.PV01,
		Sectors:      sectors,
	}, nil
}

func buildBond(bc BondConfig) (model.Bond, error) {
	if bc.ID == "" {
		return model.Bond{}, fmt.Errorf("bond id is empty")
	}
	maturity, err := time.Parse(maturityLayout, bc.Maturity)
	if err != nil {
		return model.Bond{}, fmt.Errorf("invalid maturity for %s: %w", bc.ID, err)
	}
	return model.Bond{
		ID:       bc.ID,
		IDType:   enum.ParseIDType(bc.IDType),
		Ticker:   bc.Ticker,
		Coupon:   bc.Coupon,
		Maturity: maturity,
	}, nil
}

func buildSectors(cfg map[string][]string, ref *refdata.Service) ([]model.BucketedSector, error) {
	sectors := make([]model.BucketedSector, 0, len(cfg))
	for name, ids := range cfg {
		sector := model.BucketedSector{Name: name}
		for _, id := range ids {
			bond, ok := ref.Get(id)
			if !ok {
				return nil, fmt.Errorf("sector %s references unknown product: %s", name, id)
			}
			sector.Products = append(sector.Products, bond)
		}
		sectors = append(sectors, sector)
	}
	return sectors, nil
}
