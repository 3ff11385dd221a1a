package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adaptivemath/mathgen/internal/mastery"
)

// snapshotsToKeep bounds the per-tracker history of saved states.
const snapshotsToKeep = 10

// SaveBKT persists the tracker's current state and prunes old snapshots.
func (s *Store) SaveBKT(ctx context.Context, tracker *mastery.BKTTracker) error {
	data, err := json.Marshal(tracker.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal bkt snapshot: %w", err)
	}
	if err := s.SaveSnapshot(ctx, TrackerBKT, data); err != nil {
		return err
	}
	return s.PruneSnapshots(ctx, TrackerBKT, snapshotsToKeep)
}

// LoadBKT restores the most recent BKT tracker state, or returns a fresh
// tracker with default parameters when nothing has been saved yet.
func (s *Store) LoadBKT(ctx context.Context) (*mastery.BKTTracker, error) {
	snap, err := s.LatestSnapshot(ctx, TrackerBKT)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return mastery.NewBKTTracker(mastery.DefaultBKTParams())
	}

	var state mastery.BKTSnapshot
	if err := json.Unmarshal(snap.Data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal bkt snapshot: %w", err)
	}
	return mastery.RestoreBKT(state)
}

// SaveEMA persists the tracker's current state and prunes old snapshots.
func (s *Store) SaveEMA(ctx context.Context, tracker *mastery.EMATracker) error {
	data, err := json.Marshal(tracker.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal ema snapshot: %w", err)
	}
	if err := s.SaveSnapshot(ctx, TrackerEMA, data); err != nil {
		return err
	}
	return s.PruneSnapshots(ctx, TrackerEMA, snapshotsToKeep)
}

// LoadEMA restores the most recent EMA tracker state, or returns a fresh
// tracker with the default alpha when nothing has been saved yet.
func (s *Store) LoadEMA(ctx context.Context) (*mastery.EMATracker, error) {
	snap, err := s.LatestSnapshot(ctx, TrackerEMA)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return mastery.NewEMATracker(mastery.DefaultAlpha)
	}

	var state mastery.EMASnapshot
	if err := json.Unmarshal(snap.Data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal ema snapshot: %w", err)
	}
	return mastery.RestoreEMA(state)
}
