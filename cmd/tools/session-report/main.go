// Command session-report renders an HTML report for a recorded telemetry
// session: encoded frame size and joint count over time.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/openmoveio/posestream/internal/recorder"
)

var (
	dbPath    = flag.String("db", "", "Path to the frame log (required)")
	sessionID = flag.String("session", "", "Session to report on (default: all frames)")
	output    = flag.String("out", "session-report.html", "Output HTML file")
)

func main() {
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("-db is required")
	}

	store, err := recorder.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open frame log: %v", err)
	}
	defer store.Close()

	if *sessionID == "" {
		sessions, err := store.Sessions()
		if err != nil {
			log.Fatalf("failed to list sessions: %v", err)
		}
		log.Printf("Sessions in log: %v", sessions)
	}

	frames, err := store.Frames(*sessionID)
	if err != nil {
		log.Fatalf("failed to load frames: %v", err)
	}
	if len(frames) == 0 {
		log.Fatal("no frames to report on")
	}

	xAxis := make([]string, 0, len(frames))
	sizes := make([]opts.LineData, 0, len(frames))
	joints := make([]opts.LineData, 0, len(frames))
	for _, f := range frames {
		xAxis = append(xAxis, fmt.Sprintf("%.2f", f.Timestamp))
		sizes = append(sizes, opts.LineData{Value: f.ByteCount})
		joints = append(joints, opts.LineData{Value: f.JointCount})
	}

	sizeLine := charts.NewLine()
	sizeLine.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Encoded frame size",
			Subtitle: fmt.Sprintf("session=%s frames=%d", *sessionID, len(frames)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "bytes"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "timestamp (s)"}),
	)
	sizeLine.SetXAxis(xAxis).AddSeries("bytes", sizes)

	jointLine := charts.NewLine()
	jointLine.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Joints per frame"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "joints"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "timestamp (s)"}),
	)
	jointLine.SetXAxis(xAxis).AddSeries("joints", joints)

	page := components.NewPage()
	page.AddCharts(sizeLine, jointLine)

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("failed to create output file: %v", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		log.Fatalf("failed to render report: %v", err)
	}
	log.Printf("Wrote %s", *output)
}
