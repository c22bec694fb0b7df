package network

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/openmoveio/posestream/internal/monitoring"
	"github.com/openmoveio/posestream/internal/timeutil"
)

// MaxDatagramBytes is the largest payload guaranteed deliverable in one
// IPv4 UDP datagram without fragmentation (65,535 minus IP and UDP headers).
const MaxDatagramBytes = 65507

// ErrOversizeFrame is returned when an encoded frame exceeds
// MaxDatagramBytes. The frame is dropped whole: never truncated, never
// split across datagrams.
var ErrOversizeFrame = errors.New("encoded frame exceeds max datagram size")

// Transport is a size-bounded, best-effort datagram sender.
//
// Oversize frames are dropped with a diagnostic throttled to once per
// rolling second. Socket-level send failures are reported to the caller,
// which by design ignores them: this is latest-value-wins telemetry, and a
// lost frame is superseded within one scheduler period, so retrying a stale
// frame would be actively wrong.
//
// Send runs on the tick loop only. The counters are atomic because Stats is
// read from the HTTP API goroutine.
type Transport struct {
	conn        DatagramConn
	oversizeLog *monitoring.Throttle
	sendFailLog *monitoring.Throttle

	sent         atomic.Uint64
	droppedSize  atomic.Uint64
	failedWrites atomic.Uint64
}

// NewTransport wraps a connected datagram socket.
func NewTransport(conn DatagramConn, clock timeutil.Clock) *Transport {
	return &Transport{
		conn:        conn,
		oversizeLog: monitoring.NewThrottle(clock, time.Second),
		sendFailLog: monitoring.NewThrottle(clock, time.Second),
	}
}

// Send transmits one encoded frame. It returns ErrOversizeFrame (wrapped)
// for payloads over the cap without touching the socket, and surfaces
// socket errors for the single attempted write. No retries either way.
func (t *Transport) Send(payload []byte) error {
	if len(payload) > MaxDatagramBytes {
		t.droppedSize.Add(1)
		t.oversizeLog.Logf("dropping oversize frame: %d bytes (max %d)", len(payload), MaxDatagramBytes)
		return fmt.Errorf("%w: %d bytes", ErrOversizeFrame, len(payload))
	}
	if _, err := t.conn.Write(payload); err != nil {
		t.failedWrites.Add(1)
		t.sendFailLog.Logf("send to %v failed: %v", t.conn.RemoteAddr(), err)
		return fmt.Errorf("send frame: %w", err)
	}
	t.sent.Add(1)
	return nil
}

// Stats reports frames sent, dropped for size, and failed at the socket.
func (t *Transport) Stats() (sent, droppedSize, failedWrites uint64) {
	return t.sent.Load(), t.droppedSize.Load(), t.failedWrites.Load()
}

// Close releases the socket. Further sends fail and are swallowed by the
// caller like any other transport failure.
func (t *Transport) Close() error {
	return t.conn.Close()
}
