// Package recorder persists sent frames to SQLite for replay and reporting.
package recorder

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/openmoveio/posestream/internal/session"
)

// Store is an append-only log of sent frames. One row per frame, raw wire
// payload included, so a recorded session can be replayed byte for byte.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a frame log at path and applies any
// pending schema migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open frame log %q: %w", path, err)
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Record appends one sent frame. Implements session.FrameSink.
func (s *Store) Record(r session.FrameRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO frames (
			session_id, pipeline, frame_timestamp, joint_count,
			byte_count, payload, recorded_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.Pipeline,
		r.Timestamp,
		r.JointCount,
		r.Bytes,
		r.Payload,
		r.RecordedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert frame: %w", err)
	}
	return nil
}

// StoredFrame is one row of the frame log.
type StoredFrame struct {
	FrameID      int64
	SessionID    string
	Pipeline     string
	Timestamp    float64
	JointCount   int
	ByteCount    int
	Payload      []byte
	RecordedAtNs int64
}

// Frames returns all frames for a session ordered by recording time. An
// empty sessionID returns every frame in the log.
func (s *Store) Frames(sessionID string) ([]StoredFrame, error) {
	query := `
		SELECT frame_id, session_id, pipeline, frame_timestamp,
		       joint_count, byte_count, payload, recorded_at_ns
		FROM frames`
	var args []any
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY recorded_at_ns`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()

	var out []StoredFrame
	for rows.Next() {
		var f StoredFrame
		if err := rows.Scan(&f.FrameID, &f.SessionID, &f.Pipeline, &f.Timestamp,
			&f.JointCount, &f.ByteCount, &f.Payload, &f.RecordedAtNs); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Sessions returns the distinct session IDs present in the log.
func (s *Store) Sessions() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT session_id FROM frames ORDER BY session_id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
