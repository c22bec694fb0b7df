// Command posewatch is a debug listener for pose telemetry. It binds a UDP
// port, decodes arriving frames, and prints per-second packet statistics
// plus an occasional frame summary.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"sync/atomic"
	"time"

	"github.com/openmoveio/posestream/internal/pose"
)

var (
	listenAddr = flag.String("listen", ":9000", "UDP address to listen on")
	verbose    = flag.Bool("verbose", false, "Print a summary line for every decoded frame")
)

func main() {
	flag.Parse()

	addr, err := net.ResolveUDPAddr("udp", *listenAddr)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	fmt.Printf("Listening for pose telemetry on %s\n", conn.LocalAddr())

	var packetCount, byteCount, decodeErrors int64

	// Statistics goroutine
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			packets := atomic.SwapInt64(&packetCount, 0)
			bytes := atomic.SwapInt64(&byteCount, 0)
			bad := atomic.SwapInt64(&decodeErrors, 0)
			if packets > 0 || bad > 0 {
				fmt.Printf("Received: %d frames/sec, %.1f KB/sec, %d decode errors\n",
					packets, float64(bytes)/1024, bad)
			}
		}
	}()

	buffer := make([]byte, 65536)
	var lastSummary time.Time
	for {
		n, from, err := conn.ReadFromUDP(buffer)
		if err != nil {
			log.Printf("Read error: %v", err)
			continue
		}

		atomic.AddInt64(&byteCount, int64(n))

		frame, err := pose.Decode(buffer[:n])
		if err != nil {
			atomic.AddInt64(&decodeErrors, 1)
			log.Printf("Failed to decode packet from %s: %v", from, err)
			continue
		}
		atomic.AddInt64(&packetCount, 1)

		if *verbose || time.Since(lastSummary) >= 5*time.Second {
			printSummary(frame)
			lastSummary = time.Now()
		}
	}
}

func printSummary(f *pose.Frame) {
	p := f.HMD.Position
	fmt.Printf("%s/%s t=%.3f hmd=(%.3f, %.3f, %.3f) joints=%d analysis=%s visualization=%s\n",
		f.Pipeline, f.Source, f.Timestamp, p.X, p.Y, p.Z, len(f.Joints),
		f.Metadata.AnalysisSource, f.Metadata.VisualizationSource)

	max := len(f.Joints)
	if max > 4 {
		max = 4
	}
	for _, j := range f.Joints[:max] {
		fmt.Printf("  %s: (%.3f, %.3f, %.3f) conf=%.2f\n",
			j.Name, j.Pose.Position.X, j.Pose.Position.Y, j.Pose.Position.Z, j.Confidence)
	}
	if len(f.Joints) > max {
		fmt.Printf("  ... %d more\n", len(f.Joints)-max)
	}
}
