// Command replay re-sends frames from a recorded session at their original
// cadence. Useful for exercising a listener without a live tracking session.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/openmoveio/posestream/internal/network"
	"github.com/openmoveio/posestream/internal/recorder"
	"github.com/openmoveio/posestream/internal/timeutil"
)

var (
	dbPath    = flag.String("db", "", "Path to the frame log (required)")
	sessionID = flag.String("session", "", "Session to replay (default: all frames)")
	dest      = flag.String("dest", "127.0.0.1:9000", "Replay destination host:port")
	speed     = flag.Float64("speed", 1.0, "Playback speed multiplier")
)

func main() {
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("-db is required")
	}
	if *speed <= 0 {
		log.Fatal("-speed must be positive")
	}

	store, err := recorder.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open frame log: %v", err)
	}
	defer store.Close()

	frames, err := store.Frames(*sessionID)
	if err != nil {
		log.Fatalf("failed to load frames: %v", err)
	}
	if len(frames) == 0 {
		log.Fatal("no frames to replay")
	}

	conn, err := network.DialUDP(*dest)
	if err != nil {
		log.Fatalf("failed to dial destination: %v", err)
	}
	defer conn.Close()

	clock := timeutil.RealClock{}
	transport := network.NewTransport(conn, clock)

	log.Printf("Replaying %d frames to %s at %gx", len(frames), *dest, *speed)

	prev := frames[0].RecordedAtNs
	for _, f := range frames {
		if gap := f.RecordedAtNs - prev; gap > 0 {
			clock.Sleep(time.Duration(float64(gap) / *speed))
		}
		prev = f.RecordedAtNs

		// Best effort, same as live telemetry: a failed send is logged
		// by the transport and skipped.
		transport.Send(f.Payload)
	}

	sent, droppedSize, failed := transport.Stats()
	log.Printf("Replay done: %d sent, %d oversize, %d failed", sent, droppedSize, failed)
}
