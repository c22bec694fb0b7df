// Package session ties one tracking source to one transport and drives the
// per-tick telemetry pipeline.
package session

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/openmoveio/posestream/internal/monitoring"
	"github.com/openmoveio/posestream/internal/network"
	"github.com/openmoveio/posestream/internal/packet"
	"github.com/openmoveio/posestream/internal/pose"
	"github.com/openmoveio/posestream/internal/schedule"
	"github.com/openmoveio/posestream/internal/timeutil"
	"github.com/openmoveio/posestream/internal/track"
)

// FrameRecord describes one successfully sent frame for optional
// persistence.
type FrameRecord struct {
	SessionID  string
	Pipeline   string
	Timestamp  float64
	JointCount int
	Bytes      int
	Payload    []byte
	RecordedAt time.Time
}

// FrameSink receives a record per sent frame. Sink errors are logged and do
// not affect the telemetry path.
type FrameSink interface {
	Record(FrameRecord) error
}

// Stats are the session's lifetime counters.
type Stats struct {
	ID                 string `json:"id"`
	Pipeline           string `json:"pipeline"`
	Built              uint64 `json:"built"`
	Sent               uint64 `json:"sent"`
	SkippedUnavailable uint64 `json:"skipped_unavailable"`
	DroppedOversize    uint64 `json:"dropped_oversize"`
	SendFailed         uint64 `json:"send_failed"`
}

// Session owns one adapter, one scheduler and one transport. The socket is
// opened before construction and closed on teardown; nothing is shared
// across sessions except the configuration registry behind the builder.
//
// Tick runs on the host's update callback only and never blocks. The
// counters are atomic because Stats is read from the HTTP API goroutine.
type Session struct {
	id        string
	kind      pose.PipelineKind
	source    track.Source
	scheduler *schedule.Scheduler
	builder   *packet.Builder
	transport *network.Transport
	clock     timeutil.Clock
	sink      FrameSink

	built              atomic.Uint64
	sent               atomic.Uint64
	skippedUnavailable atomic.Uint64
}

// New creates a session. sink may be nil to disable frame recording.
func New(kind pose.PipelineKind, source track.Source, scheduler *schedule.Scheduler, builder *packet.Builder, transport *network.Transport, clock timeutil.Clock, sink FrameSink) *Session {
	return &Session{
		id:        uuid.New().String(),
		kind:      kind,
		source:    source,
		scheduler: scheduler,
		builder:   builder,
		transport: transport,
		clock:     clock,
		sink:      sink,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Tick runs one iteration of the telemetry pipeline: rate gate, source
// availability, sample, build, encode, cap check, send.
//
// Transport errors are counted and swallowed here. A lost frame is
// superseded by the next one within a scheduler period, so nothing upstream
// needs to know.
func (s *Session) Tick() {
	now := s.clock.Now()
	if !s.scheduler.ShouldEmit(now) {
		return
	}
	if !s.source.Available() {
		s.skippedUnavailable.Add(1)
		return
	}
	s.scheduler.MarkEmitted(now)

	frame := s.builder.Build(s.kind, s.source.Joints(), s.source.HMD())
	s.built.Add(1)

	payload, err := pose.Encode(frame)
	if err != nil {
		monitoring.Logf("session %s: encode failed: %v", s.id, err)
		return
	}

	// Best effort: a failed send is dropped and the transport has
	// already logged what matters.
	if err := s.transport.Send(payload); err != nil {
		return
	}
	s.sent.Add(1)

	if s.sink != nil {
		rec := FrameRecord{
			SessionID:  s.id,
			Pipeline:   string(s.kind),
			Timestamp:  frame.Timestamp,
			JointCount: len(frame.Joints),
			Bytes:      len(payload),
			Payload:    payload,
			RecordedAt: now,
		}
		if err := s.sink.Record(rec); err != nil {
			monitoring.Logf("session %s: frame sink: %v", s.id, err)
		}
	}
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() Stats {
	_, droppedSize, failedWrites := s.transport.Stats()
	return Stats{
		ID:                 s.id,
		Pipeline:           string(s.kind),
		Built:              s.built.Load(),
		Sent:               s.sent.Load(),
		SkippedUnavailable: s.skippedUnavailable.Load(),
		DroppedOversize:    droppedSize,
		SendFailed:         failedWrites,
	}
}

// Close releases the session's transport socket. Ticks after Close fail at
// the socket and are swallowed like any other send failure.
func (s *Session) Close() error {
	return s.transport.Close()
}
