package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adaptivemath/mathgen/internal/mastery"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadBKT(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tracker, err := mastery.NewBKTTracker(mastery.DefaultBKTParams())
	require.NoError(t, err)
	tracker.Update("fractions", "", true, 0)
	tracker.Update("fractions", "", true, 0)
	tracker.Update("algebra", "linear", false, 0)

	require.NoError(t, s.SaveBKT(ctx, tracker))

	restored, err := s.LoadBKT(ctx)
	require.NoError(t, err)
	require.Equal(t, tracker.Mastery("fractions", ""), restored.Mastery("fractions", ""))
	require.Equal(t, tracker.Mastery("algebra", "linear"), restored.Mastery("algebra", "linear"))

	rec := restored.Record("fractions", "")
	require.Equal(t, 2, rec.Attempts)
	require.Equal(t, 2, rec.Correct)
}

func TestLoadBKTWithoutSnapshotReturnsFreshTracker(t *testing.T) {
	s := openTestStore(t)

	tracker, err := s.LoadBKT(context.Background())
	require.NoError(t, err)
	require.Equal(t, mastery.DefaultBKTParams(), tracker.Defaults())
	require.Empty(t, tracker.Records())
}

func TestSaveAndLoadEMA(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tracker, err := mastery.NewEMATracker(0.4)
	require.NoError(t, err)
	tracker.Update("geometry", "", true, 8*time.Second)
	tracker.Update("geometry", "", false, 0)

	require.NoError(t, s.SaveEMA(ctx, tracker))

	restored, err := s.LoadEMA(ctx)
	require.NoError(t, err)
	require.Equal(t, 0.4, restored.Alpha())
	require.Equal(t, tracker.Mastery("geometry", ""), restored.Mastery("geometry", ""))
}

func TestLatestSnapshotPicksNewest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tracker, err := mastery.NewBKTTracker(mastery.DefaultBKTParams())
	require.NoError(t, err)

	require.NoError(t, s.SaveBKT(ctx, tracker))
	tracker.Update("ratios", "", true, 0)
	require.NoError(t, s.SaveBKT(ctx, tracker))

	snap, err := s.LatestSnapshot(ctx, TrackerBKT)
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.EqualValues(t, 2, snap.Sequence)

	var state mastery.BKTSnapshot
	require.NoError(t, json.Unmarshal(snap.Data, &state))
	require.Contains(t, state.Records, "ratios")
}

func TestSaveSnapshotRejectsMalformedData(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.SaveSnapshot(ctx, TrackerBKT, json.RawMessage(`{"records": {}}`))
	require.Error(t, err, "missing default_params must fail validation")

	err = s.SaveSnapshot(ctx, TrackerEMA, json.RawMessage(`{"alpha": 1.5, "records": {}}`))
	require.Error(t, err, "alpha outside (0,1) must fail validation")

	err = s.SaveSnapshot(ctx, "unknown", json.RawMessage(`{}`))
	require.Error(t, err)
}

func TestPruneSnapshots(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tracker, err := mastery.NewEMATracker(mastery.DefaultAlpha)
	require.NoError(t, err)

	for i := 0; i < 15; i++ {
		tracker.Update("percentages", "", true, 0)
		require.NoError(t, s.SaveEMA(ctx, tracker))
	}

	var count int
	require.NoError(t, s.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tracker_snapshots WHERE tracker = ?`, TrackerEMA,
	).Scan(&count))
	require.LessOrEqual(t, count, 10)

	snap, err := s.LatestSnapshot(ctx, TrackerEMA)
	require.NoError(t, err)
	require.NotNil(t, snap)
}

func TestDeleteSnapshots(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tracker, err := mastery.NewBKTTracker(mastery.DefaultBKTParams())
	require.NoError(t, err)
	require.NoError(t, s.SaveBKT(ctx, tracker))

	require.NoError(t, s.DeleteSnapshots(ctx, TrackerBKT))

	snap, err := s.LatestSnapshot(ctx, TrackerBKT)
	require.NoError(t, err)
	require.Nil(t, snap)
}

func TestValidateSnapshotAcceptsRealExports(t *testing.T) {
	bkt, err := mastery.NewBKTTracker(mastery.DefaultBKTParams())
	require.NoError(t, err)
	bkt.Update("fractions", "addition", true, 0)
	data, err := json.Marshal(bkt.Snapshot())
	require.NoError(t, err)
	require.NoError(t, ValidateSnapshot(TrackerBKT, data))

	ema, err := mastery.NewEMATracker(mastery.DefaultAlpha)
	require.NoError(t, err)
	ema.Update("fractions", "", false, 0)
	data, err = json.Marshal(ema.Snapshot())
	require.NoError(t, err)
	require.NoError(t, ValidateSnapshot(TrackerEMA, data))
}
