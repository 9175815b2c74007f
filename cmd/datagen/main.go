package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/yanun0323/logs"

	"main/internal/mdg"
	"main/internal/ops"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config (empty=built-in defaults)")
	perBond := flag.Int("count", 1000, "Rows per bond per input file")
	flag.Parse()

	loaded, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	bonds := loaded.RefData.BondsByTicker(loaded.Ticker)
	gen, err := mdg.NewGenerator(bonds)
	if err != nil {
		log.Fatalf("generator init failed: %v", err)
	}

	targets := []struct {
		name  string
		path  string
		write func(string, int) error
	}{
		{"trades", loaded.Inputs.Trades, gen.WriteTrades},
		{"prices", loaded.Inputs.Prices, gen.WritePrices},
		{"market data", loaded.Inputs.MarketData, gen.WriteMarketData},
		{"inquiries", loaded.Inputs.Inquiries, gen.WriteInquiries},
	}
	for _, t := range targets {
		if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
			log.Fatalf("create directory for %s failed: %v", t.path, err)
		}
		if err := t.write(t.path, *perBond); err != nil {
			log.Fatalf("generate %s failed: %v", t.name, err)
		}
		logs.Infof("generated %s: %s (%d rows per bond, %d bonds)", t.name, t.path, *perBond, len(bonds))
	}
}
