package mastery

import "time"

// Snapshot types are the persistence contract for both trackers: plain
// structs that marshal to the JSON stored by internal/store. Histories are
// capped at the persisted limit on export; the live buffers refill from
// there on restore.

// BKTSnapshot is the full serializable state of a BKTTracker.
type BKTSnapshot struct {
	Defaults BKTParams                    `json:"default_params"`
	Records  map[string]BKTRecordSnapshot `json:"records"`
}

// BKTRecordSnapshot is one skill's persisted BKT state.
type BKTRecordSnapshot struct {
	SkillID         string    `json:"skill_id"`
	TopicID         string    `json:"topic_id"`
	SubtopicID      string    `json:"subtopic_id,omitempty"`
	Mastery         float64   `json:"mastery"`
	Params          BKTParams `json:"params"`
	Attempts        int       `json:"attempts"`
	Correct         int       `json:"correct"`
	Streak          int       `json:"streak"`
	BestStreak      int       `json:"best_streak"`
	ResponseHistory []bool    `json:"response_history"`
	MasteryHistory  []float64 `json:"mastery_history"`
	LastUpdated     time.Time `json:"last_updated"`
}

// Snapshot exports the tracker state with histories capped to the last 20
// entries.
func (t *BKTTracker) Snapshot() BKTSnapshot {
	snap := BKTSnapshot{
		Defaults: t.defaults,
		Records:  make(map[string]BKTRecordSnapshot, len(t.records)),
	}
	for key, rec := range t.records {
		snap.Records[key] = BKTRecordSnapshot{
			SkillID:         rec.SkillID,
			TopicID:         rec.TopicID,
			SubtopicID:      rec.SubtopicID,
			Mastery:         rec.Mastery,
			Params:          rec.Params,
			Attempts:        rec.Attempts,
			Correct:         rec.Correct,
			Streak:          rec.Streak,
			BestStreak:      rec.BestStreak,
			ResponseHistory: rec.Responses.Last(persistedHistoryCap),
			MasteryHistory:  rec.MasteryPath.Last(persistedHistoryCap),
			LastUpdated:     rec.LastUpdated,
		}
	}
	return snap
}

// RestoreBKT rebuilds a tracker from a snapshot, re-validating the
// parameters so a hand-edited state file cannot smuggle in a non-identifiable
// configuration.
func RestoreBKT(snap BKTSnapshot) (*BKTTracker, error) {
	tracker, err := NewBKTTracker(snap.Defaults)
	if err != nil {
		return nil, err
	}
	for key, rs := range snap.Records {
		if err := rs.Params.Validate(); err != nil {
			return nil, err
		}
		rec := &BKTRecord{
			SkillID:     rs.SkillID,
			TopicID:     rs.TopicID,
			SubtopicID:  rs.SubtopicID,
			Mastery:     rs.Mastery,
			Params:      rs.Params,
			Attempts:    rs.Attempts,
			Correct:     rs.Correct,
			Streak:      rs.Streak,
			BestStreak:  rs.BestStreak,
			Responses:   NewHistory[bool](liveHistoryCap),
			MasteryPath: NewHistory[float64](liveHistoryCap),
			CreatedAt:   rs.LastUpdated,
			LastUpdated: rs.LastUpdated,
		}
		for _, v := range rs.ResponseHistory {
			rec.Responses.Append(v)
		}
		for _, v := range rs.MasteryHistory {
			rec.MasteryPath.Append(v)
		}
		tracker.records[key] = rec
	}
	return tracker, nil
}

// EMASnapshot is the full serializable state of an EMATracker.
type EMASnapshot struct {
	Alpha   float64                      `json:"alpha"`
	Records map[string]EMARecordSnapshot `json:"records"`
}

// EMARecordSnapshot is one skill's persisted EMA state.
type EMARecordSnapshot struct {
	TopicID     string    `json:"topic_id"`
	SubtopicID  string    `json:"subtopic_id,omitempty"`
	Mastery     float64   `json:"mastery_score"`
	Attempts    int       `json:"attempts"`
	Correct     int       `json:"correct"`
	Streak      int       `json:"streak"`
	BestStreak  int       `json:"best_streak"`
	History     []float64 `json:"history"`
	LastUpdated time.Time `json:"last_updated"`
}

// Snapshot exports the tracker state with histories capped to the last 20
// entries.
func (t *EMATracker) Snapshot() EMASnapshot {
	snap := EMASnapshot{
		Alpha:   t.alpha,
		Records: make(map[string]EMARecordSnapshot, len(t.records)),
	}
	for key, rec := range t.records {
		snap.Records[key] = EMARecordSnapshot{
			TopicID:     rec.TopicID,
			SubtopicID:  rec.SubtopicID,
			Mastery:     rec.Mastery,
			Attempts:    rec.Attempts,
			Correct:     rec.Correct,
			Streak:      rec.Streak,
			BestStreak:  rec.BestStreak,
			History:     rec.Performances.Last(persistedHistoryCap),
			LastUpdated: rec.LastUpdated,
		}
	}
	return snap
}

// RestoreEMA rebuilds a tracker from a snapshot, re-validating alpha.
func RestoreEMA(snap EMASnapshot) (*EMATracker, error) {
	tracker, err := NewEMATracker(snap.Alpha)
	if err != nil {
		return nil, err
	}
	for key, rs := range snap.Records {
		rec := &EMARecord{
			TopicID:      rs.TopicID,
			SubtopicID:   rs.SubtopicID,
			Mastery:      rs.Mastery,
			Attempts:     rs.Attempts,
			Correct:      rs.Correct,
			Streak:       rs.Streak,
			BestStreak:   rs.BestStreak,
			Performances: NewHistory[float64](liveHistoryCap),
			LastUpdated:  rs.LastUpdated,
		}
		for _, v := range rs.History {
			rec.Performances.Append(v)
		}
		tracker.records[key] = rec
	}
	return tracker, nil
}
