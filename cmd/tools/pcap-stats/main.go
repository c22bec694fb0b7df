// Command pcap-stats analyses a packet capture of pose telemetry traffic.
// It reports datagram rate, size distribution, and decode success for the
// UDP payloads on the telemetry port.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/openmoveio/posestream/internal/pose"
)

var (
	pcapFile = flag.String("pcap", "", "Path to the pcap file (required)")
	udpPort  = flag.Int("port", 9000, "Telemetry UDP destination port")
)

type stats struct {
	packets   int
	bytes     int
	minSize   int
	maxSize   int
	decoded   int
	badDecode int
	perPipe   map[string]int
	jointsSum int
	first     time.Time
	last      time.Time
}

func main() {
	flag.Parse()

	if *pcapFile == "" {
		log.Fatal("-pcap is required")
	}

	f, err := os.Open(*pcapFile)
	if err != nil {
		log.Fatalf("failed to open pcap: %v", err)
	}
	defer f.Close()

	reader, err := pcapgo.NewReader(f)
	if err != nil {
		log.Fatalf("failed to read pcap header: %v", err)
	}

	st := stats{perPipe: map[string]int{}}

	for {
		data, ci, err := reader.ReadPacketData()
		if err != nil {
			break
		}

		packet := gopacket.NewPacket(data, reader.LinkType(), gopacket.Default)
		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp := udpLayer.(*layers.UDP)
		if int(udp.DstPort) != *udpPort {
			continue
		}

		payload := udp.Payload
		st.packets++
		st.bytes += len(payload)
		if st.minSize == 0 || len(payload) < st.minSize {
			st.minSize = len(payload)
		}
		if len(payload) > st.maxSize {
			st.maxSize = len(payload)
		}
		if st.first.IsZero() {
			st.first = ci.Timestamp
		}
		st.last = ci.Timestamp

		frame, err := pose.Decode(payload)
		if err != nil {
			st.badDecode++
			continue
		}
		st.decoded++
		st.perPipe[string(frame.Pipeline)]++
		st.jointsSum += len(frame.Joints)
	}

	if st.packets == 0 {
		log.Fatalf("no UDP packets to port %d found", *udpPort)
	}

	duration := st.last.Sub(st.first).Seconds()
	fmt.Printf("Capture: %s\n", *pcapFile)
	fmt.Printf("Telemetry datagrams: %d (%d bytes) over %.2fs\n", st.packets, st.bytes, duration)
	if duration > 0 {
		fmt.Printf("Rates: %.1f frames/sec, %.1f KB/sec\n",
			float64(st.packets)/duration, float64(st.bytes)/1024/duration)
	}
	fmt.Printf("Payload size: min=%d max=%d avg=%.0f bytes\n",
		st.minSize, st.maxSize, float64(st.bytes)/float64(st.packets))
	fmt.Printf("Decode: %d ok, %d failed\n", st.decoded, st.badDecode)
	for pipe, n := range st.perPipe {
		fmt.Printf("  %s: %d frames\n", pipe, n)
	}
	if st.decoded > 0 {
		fmt.Printf("Average joints per frame: %.1f\n", float64(st.jointsSum)/float64(st.decoded))
	}
}
