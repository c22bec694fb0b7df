package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmoveio/posestream/internal/monitoring"
	"github.com/openmoveio/posestream/internal/network"
	"github.com/openmoveio/posestream/internal/packet"
	"github.com/openmoveio/posestream/internal/pose"
	"github.com/openmoveio/posestream/internal/registry"
	"github.com/openmoveio/posestream/internal/schedule"
	"github.com/openmoveio/posestream/internal/timeutil"
	"github.com/openmoveio/posestream/internal/track"
)

type fixture struct {
	clock   *timeutil.MockClock
	runtime *track.MockRuntime
	reg     *registry.Registry
	conn    *network.MockDatagramConn
	session *Session
}

func newSkeletonFixture(t *testing.T, rateHz int, sink FrameSink) *fixture {
	t.Helper()

	clock := timeutil.NewMockClock(time.Unix(5000, 0))
	reg := registry.New(registry.VisMovementSDKOnly, registry.AnalysisOpenXRMediaPipe)
	runtime := track.NewMockRuntime()
	runtime.SetSkeleton(track.SkeletonSnapshot{
		Valid:          true,
		HighConfidence: true,
		Bones: []track.Bone{
			{ID: "Hips", Pose: pose.Identity()},
			{ID: "Head", Pose: pose.Identity()},
		},
	})

	conn := network.NewMockDatagramConn()
	adapter := track.NewSkeletonAdapter(runtime, runtime, track.HMDConfig{ProxyNode: "center_eye"})
	sess := New(
		pose.PipelineAnalysis,
		adapter,
		schedule.New(rateHz),
		packet.NewBuilder(clock, reg),
		network.NewTransport(conn, clock),
		clock,
		sink,
	)
	return &fixture{clock: clock, runtime: runtime, reg: reg, conn: conn, session: sess}
}

func TestTickSendsDecodableFrame(t *testing.T) {
	f := newSkeletonFixture(t, 30, nil)

	f.session.Tick()

	require.Len(t, f.conn.Sent, 1)
	frame, err := pose.Decode(f.conn.Sent[0])
	require.NoError(t, err)

	assert.Equal(t, pose.PipelineAnalysis, frame.Pipeline)
	assert.Equal(t, "openxr+mediapipe", frame.Source)
	assert.False(t, frame.Metadata.VisualizationOnly)
	assert.Len(t, frame.Joints, 2)

	stats := f.session.Stats()
	assert.Equal(t, uint64(1), stats.Built)
	assert.Equal(t, uint64(1), stats.Sent)
}

func TestTickRespectsSchedulerGate(t *testing.T) {
	f := newSkeletonFixture(t, 30, nil)

	// 90 Hz host ticks for one second of mock time.
	for i := 0; i < 90; i++ {
		f.session.Tick()
		f.clock.Advance(time.Second / 90)
	}

	sent := len(f.conn.Sent)
	assert.GreaterOrEqual(t, sent, 29, "under-emitted for 30 Hz over 1s")
	assert.LessOrEqual(t, sent, 31, "over-emitted for 30 Hz over 1s")
}

func TestTickSuppressedWhenSkeletonInvalid(t *testing.T) {
	f := newSkeletonFixture(t, 30, nil)
	f.runtime.SetSkeleton(track.SkeletonSnapshot{Valid: false, HighConfidence: true})

	f.session.Tick()

	assert.Empty(t, f.conn.Sent, "frame sent despite invalid skeleton")
	stats := f.session.Stats()
	assert.Equal(t, uint64(0), stats.Built)
	assert.Equal(t, uint64(1), stats.SkippedUnavailable)
}

func TestRegistryWriteVisibleOnNextTick(t *testing.T) {
	f := newSkeletonFixture(t, 30, nil)

	f.session.Tick()
	f.reg.SetAnalysis(registry.AnalysisMediaPipeOnly)
	f.clock.Advance(40 * time.Millisecond)
	f.session.Tick()

	require.Len(t, f.conn.Sent, 2)
	frame, err := pose.Decode(f.conn.Sent[1])
	require.NoError(t, err)
	assert.Equal(t, string(registry.AnalysisMediaPipeOnly), frame.Source)
	assert.Equal(t, string(registry.AnalysisMediaPipeOnly), frame.Metadata.AnalysisSource)
}

func TestSendFailureIsSwallowed(t *testing.T) {
	original := monitoring.Logf
	monitoring.SetLogger(nil)
	defer func() { monitoring.Logf = original }()

	f := newSkeletonFixture(t, 30, nil)
	f.conn.WriteError = assert.AnError

	// The ignored-error path must be reachable without propagating.
	assert.NotPanics(t, func() { f.session.Tick() })

	stats := f.session.Stats()
	assert.Equal(t, uint64(1), stats.Built)
	assert.Equal(t, uint64(0), stats.Sent)
	assert.Equal(t, uint64(1), stats.SendFailed)

	// The next tick proceeds normally once the fault clears.
	f.conn.WriteError = nil
	f.clock.Advance(40 * time.Millisecond)
	f.session.Tick()
	assert.Equal(t, uint64(1), f.session.Stats().Sent)
}

func TestTicksAfterCloseDoNotPanic(t *testing.T) {
	original := monitoring.Logf
	monitoring.SetLogger(nil)
	defer func() { monitoring.Logf = original }()

	f := newSkeletonFixture(t, 30, nil)
	require.NoError(t, f.session.Close())

	assert.NotPanics(t, func() { f.session.Tick() })
	assert.Equal(t, uint64(0), f.session.Stats().Sent)
}

type recordingSink struct {
	records []FrameRecord
	err     error
}

func (r *recordingSink) Record(rec FrameRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func TestSinkReceivesSentFrames(t *testing.T) {
	sink := &recordingSink{}
	f := newSkeletonFixture(t, 30, sink)

	f.session.Tick()

	require.Len(t, sink.records, 1)
	rec := sink.records[0]
	assert.Equal(t, f.session.ID(), rec.SessionID)
	assert.Equal(t, string(pose.PipelineAnalysis), rec.Pipeline)
	assert.Equal(t, 2, rec.JointCount)
	assert.Equal(t, len(f.conn.Sent[0]), rec.Bytes)
}

func TestSinkErrorDoesNotBreakTelemetry(t *testing.T) {
	original := monitoring.Logf
	monitoring.SetLogger(nil)
	defer func() { monitoring.Logf = original }()

	sink := &recordingSink{err: assert.AnError}
	f := newSkeletonFixture(t, 30, sink)

	f.session.Tick()
	assert.Len(t, f.conn.Sent, 1, "send should succeed despite sink failure")
}

func TestNodeAdapterSessionEndToEnd(t *testing.T) {
	clock := timeutil.NewMockClock(time.Unix(0, 0))
	reg := registry.New(registry.VisMovementSDKMediaPipe, registry.AnalysisOpenXRMediaPipe)
	runtime := track.NewMockRuntime()
	eye := pose.Transform{Position: pose.Vec3{Y: 1.72}, Rotation: pose.Quat{W: 1}}
	runtime.SetNode("center_eye", eye)
	runtime.SetNode("head", pose.Identity())

	conn := network.NewMockDatagramConn()
	fallback := pose.Transform{Position: pose.Vec3{Y: 1.6}, Rotation: pose.Quat{W: 1}}
	adapter := track.NewNodeAdapter(runtime,
		[]track.NodeBinding{{Joint: "head", Node: "head"}, {Joint: "left_hand", Node: "left_hand"}},
		track.HMDConfig{ProxyNode: "center_eye", Fallback: &fallback})

	sess := New(pose.PipelineVisualization, adapter, schedule.New(30),
		packet.NewBuilder(clock, reg), network.NewTransport(conn, clock), clock, nil)

	sess.Tick()

	require.Len(t, conn.Sent, 1)
	frame, err := pose.Decode(conn.Sent[0])
	require.NoError(t, err)

	assert.True(t, frame.Metadata.VisualizationOnly)
	assert.Equal(t, string(registry.VisMovementSDKMediaPipe), frame.Source)
	// The resolved center-eye pose wins over the configured fallback.
	assert.InDelta(t, 1.72, float64(frame.HMD.Position.Y), 1e-6)
	// Untracked left_hand is omitted.
	require.Len(t, frame.Joints, 1)
	assert.Equal(t, "head", frame.Joints[0].Name)
}
