package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Tracker kinds accepted by the snapshot table.
const (
	TrackerBKT = "bkt"
	TrackerEMA = "ema"
)

// Snapshot is one persisted tracker state row.
type Snapshot struct {
	ID        int64
	Tracker   string
	Sequence  int64
	CreatedAt time.Time
	Data      json.RawMessage
}

// SaveSnapshot validates and stores a tracker state export. The data is
// checked against the tracker kind's JSON schema before it touches the
// database, so a malformed export can never poison a later restore.
func (s *Store) SaveSnapshot(ctx context.Context, tracker string, data json.RawMessage) error {
	if err := ValidateSnapshot(tracker, data); err != nil {
		return fmt.Errorf("validate %s snapshot: %w", tracker, err)
	}

	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(sequence) FROM tracker_snapshots WHERE tracker = ?`, tracker,
	).Scan(&seq)
	if err != nil {
		return fmt.Errorf("query snapshot sequence: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tracker_snapshots (tracker, sequence, data) VALUES (?, ?, ?)`,
		tracker, seq.Int64+1, string(data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot for the tracker kind, or
// nil if none has been saved.
func (s *Store) LatestSnapshot(ctx context.Context, tracker string) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, tracker, sequence, created_at, data
		 FROM tracker_snapshots WHERE tracker = ?
		 ORDER BY id DESC LIMIT 1`, tracker)

	var snap Snapshot
	var createdAt string
	var data string
	err := row.Scan(&snap.ID, &snap.Tracker, &snap.Sequence, &createdAt, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	snap.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot timestamp: %w", err)
	}
	snap.Data = json.RawMessage(data)

	if err := ValidateSnapshot(snap.Tracker, snap.Data); err != nil {
		return nil, fmt.Errorf("validate stored %s snapshot: %w", snap.Tracker, err)
	}
	return &snap, nil
}

// PruneSnapshots deletes all but the most recent keep snapshots for the
// tracker kind.
func (s *Store) PruneSnapshots(ctx context.Context, tracker string, keep int) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM tracker_snapshots
		 WHERE tracker = ? AND id NOT IN (
			SELECT id FROM tracker_snapshots WHERE tracker = ?
			ORDER BY id DESC LIMIT ?
		 )`, tracker, tracker, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// DeleteSnapshots removes every snapshot for the tracker kind.
func (s *Store) DeleteSnapshots(ctx context.Context, tracker string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM tracker_snapshots WHERE tracker = ?`, tracker)
	if err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}
	return nil
}
