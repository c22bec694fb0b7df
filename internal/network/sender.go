// Package network provides the best-effort datagram transport for encoded
// pose frames.
package network

import (
	"fmt"
	"net"
)

// DatagramConn defines the socket operations the transport needs. The
// abstraction enables unit testing without real network connections.
type DatagramConn interface {
	// Write sends one datagram to the connected destination.
	Write(b []byte) (int, error)

	// Close closes the socket.
	Close() error

	// RemoteAddr returns the fixed destination address.
	RemoteAddr() net.Addr
}

// DialUDP opens a connected UDP socket to the given "host:port" destination.
// The destination is fixed for the socket's lifetime. An unresolvable
// address is a construction-time error: no valid destination can ever be
// derived from it, so the session must not start.
func DialUDP(dest string) (DatagramConn, error) {
	addr, err := net.ResolveUDPAddr("udp", dest)
	if err != nil {
		return nil, fmt.Errorf("resolve destination %q: %w", dest, err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial %q: %w", dest, err)
	}
	return conn, nil
}

// MockDatagramConn implements DatagramConn for testing, recording every
// datagram handed to the socket layer.
type MockDatagramConn struct {
	// Sent holds a copy of each payload passed to Write.
	Sent [][]byte
	// WriteError is returned by Write if set.
	WriteError error
	// Closed indicates whether Close was called.
	Closed bool
	// Addr is returned by RemoteAddr.
	Addr *net.UDPAddr
}

// NewMockDatagramConn creates a mock socket with a loopback destination.
func NewMockDatagramConn() *MockDatagramConn {
	return &MockDatagramConn{
		Addr: &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 9000},
	}
}

// Write records the payload, or fails with the configured error.
func (m *MockDatagramConn) Write(b []byte) (int, error) {
	if m.Closed {
		return 0, net.ErrClosed
	}
	if m.WriteError != nil {
		return 0, m.WriteError
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	m.Sent = append(m.Sent, cp)
	return len(b), nil
}

// Close marks the socket as closed.
func (m *MockDatagramConn) Close() error {
	m.Closed = true
	return nil
}

// RemoteAddr returns the mock destination address.
func (m *MockDatagramConn) RemoteAddr() net.Addr { return m.Addr }
