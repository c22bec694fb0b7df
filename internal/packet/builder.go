// Package packet assembles tagged, timestamped pose frames.
package packet

import (
	"github.com/openmoveio/posestream/internal/pose"
	"github.com/openmoveio/posestream/internal/registry"
	"github.com/openmoveio/posestream/internal/timeutil"
)

// Builder assembles frames from captured samples and the current registry
// state. The timestamp is stamped from the injected clock at build time, and
// the registry is read at build time; since capture, build and send run
// back-to-back within one tick, build time is also capture time.
type Builder struct {
	clock timeutil.Clock
	reg   *registry.Registry

	// epoch anchors the float timestamp so values stay small and
	// monotonic-ish for the process lifetime.
	epoch int64
}

// NewBuilder creates a builder stamping frames against the given clock and
// registry.
func NewBuilder(clock timeutil.Clock, reg *registry.Registry) *Builder {
	return &Builder{clock: clock, reg: reg, epoch: clock.Now().UnixNano()}
}

// sourceLabel describes the active source combination feeding the given
// pipeline, per the registry snapshot.
func sourceLabel(kind pose.PipelineKind, snap registry.Snapshot) string {
	if kind == pose.PipelineVisualization {
		return string(snap.Visualization)
	}
	return string(snap.Analysis)
}

// Build assembles one frame. Both source labels are always stamped into the
// metadata regardless of which pipeline is building, so any single frame
// reveals the full configuration state.
func (b *Builder) Build(kind pose.PipelineKind, joints []pose.Joint, hmd pose.Transform) *pose.Frame {
	snap := b.reg.Snapshot()
	return &pose.Frame{
		Pipeline:  kind,
		Source:    sourceLabel(kind, snap),
		Timestamp: float64(b.clock.Now().UnixNano()-b.epoch) / 1e9,
		HMD:       hmd,
		Joints:    joints,
		Metadata: pose.Metadata{
			VisualizationOnly:   kind == pose.PipelineVisualization,
			AnalysisSource:      string(snap.Analysis),
			VisualizationSource: string(snap.Visualization),
		},
	}
}
