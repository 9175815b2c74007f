package main

import (
	"flag"
	"log"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/obs"
	"main/internal/ops"
	"main/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config (empty=built-in defaults)")
	pyroscopeAddr := flag.String("pyroscope", "", "Pyroscope server address (empty=disabled)")
	flag.Parse()

	if *pyroscopeAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "bond-backoffice",
			ServerAddress:   *pyroscopeAddr,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	loaded, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	metrics := obs.NewMetrics()
	p := pipeline.Build(pipeline.Options{Loaded: loaded, Metrics: metrics})

	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run()
	}()

	select {
	case <-done:
	case <-sys.Shutdown():
		logs.Infof("interrupted, flushing outputs")
	}
	p.Close()

	snap := metrics.Snapshot()
	for stream, count := range snap.Read {
		logs.Infof("%s: %d records processed, %d skipped", stream, count, snap.Skipped[stream])
	}
}
