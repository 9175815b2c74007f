/*
Pipeline wires the trading back office end to end.

# Stages
  - ingress connectors: trades, prices, market depth, inquiries from files
  - trade booking -> position -> risk (per bond and per bucketed sector)
  - pricing -> algo streaming -> streaming, and pricing -> throttled GUI
  - market data -> algo execution -> execution -> trade booking loop-back
  - inquiry state machine with connector self-loop
  - historical persisters appending one row per event to the output files

# Ordering

All fan-out is synchronous and recursive; events on one ingress stream are
processed in file order, streams are drained one after another.
*/
package pipeline

import (
	"time"

	"github.com/yanun0323/logs"

	"main/internal/booking"
	"main/internal/exec"
	"main/internal/gui"
	"main/internal/hist"
	"main/internal/ingest"
	"main/internal/inquiry"
	"main/internal/marketdata"
	"main/internal/model"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/position"
	"main/internal/pricing"
	"main/internal/risk"
	"main/internal/stream"
)

// Options controls pipeline construction. Metrics, VenuePick, and Now may be
// nil for production defaults.
type Options struct {
	Loaded    ops.Loaded
	Metrics   *obs.Metrics
	VenuePick exec.VenuePicker
	Now       func() time.Time
}

// Pipeline holds every stage plus the ingress connectors and open writers.
type Pipeline struct {
	Booking    *booking.Service
	Positions  *position.Service
	Risk       *risk.Service
	Pricing    *pricing.Service
	AlgoStream *stream.AlgoService
	Streaming  *stream.Service
	GUI        *gui.Service
	MarketData *marketdata.Service
	AlgoExec   *exec.AlgoService
	Execution  *exec.Service
	Inquiries  *inquiry.Service

	inputs  ops.InputsConfig
	trades  *ingest.TradeConnector
	prices  *ingest.PriceConnector
	depth   *ingest.MarketDataConnector
	inquiry *ingest.InquiryConnector

	writers []*hist.LineWriter
}

// Build constructs every stage and links the listener graph. A sink whose
// output file cannot be opened is reported once and left unattached; the
// rest of the pipeline still runs.
func Build(opt Options) *Pipeline {
	loaded := opt.Loaded
	now := opt.Now
	if now == nil {
		now = time.Now
	}

	p := &Pipeline{inputs: loaded.Inputs}

	// trade booking -> position -> risk
	p.Booking = booking.New()
	p.Positions = position.New(loaded.RefData, loaded.Ticker)
	p.Risk = risk.New(loaded.RefData, loaded.PV01)
	p.Booking.AddListener(position.NewTradeListener(p.Positions))
	p.Positions.AddListener(risk.NewPositionListener(p.Risk))

	if w := p.openWriter(loaded.Outputs.Positions, hist.PositionHeader, now); w != nil {
		posHist := hist.NewService[model.Position](hist.NewPositionConnector(w).Publish)
		p.Positions.AddListener(hist.NewPositionListener(posHist))
	}
	if w := p.openWriter(loaded.Outputs.Risk, hist.RiskHeader, now); w != nil {
		riskHist := hist.NewRiskService(hist.NewRiskConnector(w))
		p.Risk.AddListener(hist.NewRiskListener(riskHist, p.Risk, loaded.Sectors))
	}

	// pricing -> algo streaming -> streaming, pricing -> GUI
	p.Pricing = pricing.New()
	p.AlgoStream = stream.NewAlgo()
	p.Streaming = stream.New()
	p.Pricing.AddListener(stream.NewAlgoPriceListener(p.AlgoStream))
	p.AlgoStream.AddListener(stream.NewAlgoListener(p.Streaming))

	if w := p.openWriter(loaded.Outputs.Streaming, hist.StreamingHeader, now); w != nil {
		streamHist := hist.NewService[model.PriceStream](hist.NewStreamingConnector(w).Publish)
		p.Streaming.AddListener(hist.NewStreamingListener(streamHist))
	}
	if w := p.openWriter(loaded.Outputs.GUI, hist.GUIHeader, now); w != nil {
		p.GUI = gui.New(loaded.Throttle, loaded.MaxPublishes, hist.NewGUIConnector(w), opt.Now)
		p.Pricing.AddListener(gui.NewPriceListener(p.GUI))
	}

	// market data -> algo execution -> execution -> booking loop-back
	p.MarketData = marketdata.New()
	p.AlgoExec = exec.NewAlgo()
	p.Execution = exec.New(opt.VenuePick)
	p.MarketData.AddListener(exec.NewAlgoBookListener(p.AlgoExec))
	p.AlgoExec.AddListener(exec.NewAlgoListener(p.Execution))
	p.Execution.AddListener(booking.NewExecutionListener(p.Booking))

	if w := p.openWriter(loaded.Outputs.Executions, hist.ExecutionHeader, now); w != nil {
		execHist := hist.NewService[model.ExecutionOrder](hist.NewExecutionConnector(w).Publish)
		p.Execution.AddListener(hist.NewExecutionListener(execHist))
	}

	// inquiry state machine
	p.Inquiries = inquiry.New()
	inquiry.NewConnector(p.Inquiries)
	if w := p.openWriter(loaded.Outputs.Inquiries, hist.InquiryHeader, now); w != nil {
		inqHist := hist.NewService[model.Inquiry](hist.NewInquiryConnector(w).Publish)
		p.Inquiries.AddListener(hist.NewInquiryListener(inqHist))
	}
	p.Inquiries.AddListener(inquiry.NewQuoteListener(p.Inquiries))

	// ingress connectors
	p.trades = ingest.NewTradeConnector(p.Booking, loaded.RefData, opt.Metrics)
	p.prices = ingest.NewPriceConnector(p.Pricing, loaded.RefData, opt.Metrics)
	p.depth = ingest.NewMarketDataConnector(p.MarketData, loaded.RefData, opt.Metrics)
	p.inquiry = ingest.NewInquiryConnector(p.Inquiries, loaded.RefData, opt.Metrics)

	return p
}

func (p *Pipeline) openWriter(path, header string, now func() time.Time) *hist.LineWriter {
	if path == "" {
		return nil
	}
	w, err := hist.NewLineWriter(path, header, now)
	if err != nil {
		logs.Errorf("open %s, skip sink, err: %+v", path, err)
		return nil
	}
	p.writers = append(p.writers, w)
	return w
}

// Run drains the four ingress streams in order. A stream whose file cannot
// be read is reported and skipped.
func (p *Pipeline) Run() {
	if err := p.trades.Subscribe(p.inputs.Trades); err != nil {
		logs.Errorf("trades stream, err: %+v", err)
	}
	if err := p.prices.Subscribe(p.inputs.Prices); err != nil {
		logs.Errorf("prices stream, err: %+v", err)
	}
	if err := p.depth.Subscribe(p.inputs.MarketData); err != nil {
		logs.Errorf("market data stream, err: %+v", err)
	}
	if err := p.inquiry.Subscribe(p.inputs.Inquiries); err != nil {
		logs.Errorf("inquiries stream, err: %+v", err)
	}
}

// Close flushes and closes every open output file.
func (p *Pipeline) Close() {
	for _, w := range p.writers {
		if err := w.Close(); err != nil {
			logs.Errorf("close output, err: %+v", err)
		}
	}
	p.writers = nil
}
