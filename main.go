// Command posestream streams skeletal pose telemetry over UDP.
//
// It drives two sessions sharing one wire format: an analysis session fed by
// the hierarchical-skeleton adapter and a visualization session fed by the
// node-pose adapter. The host VR runtime is an external collaborator; this
// binary animates a mock runtime so the full pipeline can be exercised end
// to end against a listener (see cmd/tools/posewatch).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openmoveio/posestream/internal/config"
	"github.com/openmoveio/posestream/internal/network"
	"github.com/openmoveio/posestream/internal/packet"
	"github.com/openmoveio/posestream/internal/pose"
	"github.com/openmoveio/posestream/internal/recorder"
	"github.com/openmoveio/posestream/internal/registry"
	"github.com/openmoveio/posestream/internal/schedule"
	"github.com/openmoveio/posestream/internal/session"
	"github.com/openmoveio/posestream/internal/timeutil"
	"github.com/openmoveio/posestream/internal/track"
	"github.com/openmoveio/posestream/internal/version"
)

var (
	configPath  = flag.String("config", "", "Path to JSON config file (optional)")
	dest        = flag.String("dest", "", "Telemetry destination host:port (overrides config)")
	rateHz      = flag.Int("rate", 0, "Emission rate in Hz (overrides config; 0 means default)")
	listen      = flag.String("listen", "", "HTTP listen address for the runtime API (overrides config)")
	record      = flag.String("record", "", "SQLite frame log path (overrides config; empty disables)")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

// hostTickRate is the simulated host update rate. The schedulers gate actual
// emission independently of it.
const hostTickRate = 90

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("posestream %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	destination := cfg.GetDestination()
	if *dest != "" {
		destination = *dest
	}
	rate := cfg.GetRateHz()
	if *rateHz != 0 {
		rate = *rateHz
	}
	listenAddr := cfg.GetListen()
	if *listen != "" {
		listenAddr = *listen
	}
	recordPath := cfg.GetRecorderPath()
	if *record != "" {
		recordPath = *record
	}

	clock := timeutil.RealClock{}
	reg := registry.New(cfg.GetVisualizationSource(), cfg.GetAnalysisSource())
	builder := packet.NewBuilder(clock, reg)

	var sink session.FrameSink
	if recordPath != "" {
		store, err := recorder.Open(recordPath)
		if err != nil {
			log.Fatalf("failed to open frame log: %v", err)
		}
		defer store.Close()
		sink = store
		log.Printf("Recording sent frames to %s", recordPath)
	}

	runtime := track.NewMockRuntime()
	hmd := track.HMDConfig{ProxyNode: cfg.GetHMDNode()}

	analysisSource := track.NewSkeletonAdapter(runtime, runtime, hmd)
	visualSource := track.NewNodeAdapter(runtime, cfg.GetNodeBindings(), hmd)

	// Each session owns its socket exclusively; the destination is fixed
	// for the session's lifetime.
	analysis, err := newSession(pose.PipelineAnalysis, analysisSource, destination, rate, builder, clock, sink)
	if err != nil {
		log.Fatalf("failed to start analysis session: %v", err)
	}
	defer analysis.Close()

	visualization, err := newSession(pose.PipelineVisualization, visualSource, destination, rate, builder, clock, sink)
	if err != nil {
		log.Fatalf("failed to start visualization session: %v", err)
	}
	defer visualization.Close()

	sessions := []*session.Session{analysis, visualization}
	log.Printf("posestream %s streaming pose telemetry to %s (analysis=%s visualization=%s)",
		version.Version, destination, analysis.ID(), visualization.ID())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go serveAPI(ctx, listenAddr, reg, sessions)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / hostTickRate)
	defer ticker.Stop()

	start := clock.Now()
	for {
		select {
		case <-sig:
			log.Println("Shutting down")
			return
		case <-ticker.C:
			runtime.Animate(clock.Since(start).Seconds())
			for _, s := range sessions {
				s.Tick()
			}
		}
	}
}

func newSession(kind pose.PipelineKind, source track.Source, destination string, rate int, builder *packet.Builder, clock timeutil.Clock, sink session.FrameSink) (*session.Session, error) {
	conn, err := network.DialUDP(destination)
	if err != nil {
		return nil, err
	}
	transport := network.NewTransport(conn, clock)
	return session.New(kind, source, schedule.New(rate), builder, transport, clock, sink), nil
}
