package mastery

import (
	"fmt"
	"time"
)

// MasteryLevel is the human-readable band for an EMA mastery score.
type MasteryLevel string

const (
	LevelNovice     MasteryLevel = "Novice"     // < 0.15
	LevelBeginner   MasteryLevel = "Beginner"   // < 0.30
	LevelDeveloping MasteryLevel = "Developing" // < 0.50
	LevelProficient MasteryLevel = "Proficient" // < 0.70
	LevelAdvanced   MasteryLevel = "Advanced"   // < 0.85
	LevelExpert     MasteryLevel = "Expert"     // >= 0.85
)

// LevelFor maps a mastery score to its band.
func LevelFor(mastery float64) MasteryLevel {
	switch {
	case mastery < 0.15:
		return LevelNovice
	case mastery < 0.30:
		return LevelBeginner
	case mastery < 0.50:
		return LevelDeveloping
	case mastery < 0.70:
		return LevelProficient
	case mastery < 0.85:
		return LevelAdvanced
	default:
		return LevelExpert
	}
}

// EMARecord tracks the exponential moving average mastery for one skill.
type EMARecord struct {
	TopicID    string
	SubtopicID string

	Mastery float64

	Attempts   int
	Correct    int
	Streak     int
	BestStreak int

	// Performances holds the weighted performance value of each response,
	// not raw correctness, since the time multiplier is part of the signal.
	Performances *History[float64]

	LastUpdated time.Time
}

// Accuracy returns the overall fraction of correct responses.
func (r *EMARecord) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// Level returns the mastery band for the current score.
func (r *EMARecord) Level() MasteryLevel {
	return LevelFor(r.Mastery)
}

// TopicSummary aggregates every record under one topic.
type TopicSummary struct {
	TopicID        string  `json:"topic_id"`
	AverageMastery float64 `json:"average_mastery"`
	TotalAttempts  int     `json:"total_attempts"`
	TotalCorrect   int     `json:"total_correct"`
	Accuracy       float64 `json:"accuracy"`
	SubtopicCount  int     `json:"subtopic_count"`
}

// Response-time thresholds for the fluency multiplier.
const (
	fastThreshold     = 5 * time.Second
	slowThreshold     = 30 * time.Second
	verySlowThreshold = 60 * time.Second
)

// initialEMAMastery is the score assigned to unseen skills.
const initialEMAMastery = 0.5

// DefaultAlpha is the smoothing factor used when the caller has no
// preference. Higher values react faster to recent performance.
const DefaultAlpha = 0.3

// EMATracker scores mastery with an exponential moving average:
// new = α·performance + (1−α)·old. The EMA resists noise (one slip does not
// crash the score) while weighting recent performance.
//
// Like BKTTracker it performs no internal locking; updates to the same
// skill key must be serialized by the caller.
type EMATracker struct {
	alpha   float64
	records map[string]*EMARecord
}

// NewEMATracker builds a tracker with the given smoothing factor. Alpha must
// be strictly inside (0, 1): 0 would never learn and 1 would discard all
// history.
func NewEMATracker(alpha float64) (*EMATracker, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("ema: alpha = %v outside (0, 1)", alpha)
	}
	return &EMATracker{
		alpha:   alpha,
		records: make(map[string]*EMARecord),
	}, nil
}

// Alpha returns the smoothing factor.
func (t *EMATracker) Alpha() float64 { return t.alpha }

// Mastery returns the score for the skill, or the 0.5 starting score for
// unseen skills.
func (t *EMATracker) Mastery(topicID, subtopicID string) float64 {
	if rec, ok := t.records[skillKey(topicID, subtopicID)]; ok {
		return rec.Mastery
	}
	return initialEMAMastery
}

// Record returns the stored record, or a fresh one at the starting score.
// The fresh record is not inserted; only Update creates state.
func (t *EMATracker) Record(topicID, subtopicID string) *EMARecord {
	if rec, ok := t.records[skillKey(topicID, subtopicID)]; ok {
		return rec
	}
	return newEMARecord(topicID, subtopicID)
}

func newEMARecord(topicID, subtopicID string) *EMARecord {
	return &EMARecord{
		TopicID:      topicID,
		SubtopicID:   subtopicID,
		Mastery:      initialEMAMastery,
		Performances: NewHistory[float64](liveHistoryCap),
		LastUpdated:  time.Now().UTC(),
	}
}

// Update applies one response and returns the new mastery. A non-zero
// response time scales a correct response's performance weight: fast answers
// earn up to +10% (capped at 1.1), slow answers a graduated penalty down to
// ×0.8 past 60s. The multiplier never applies to incorrect responses, so a
// wrong answer can never score above zero.
func (t *EMATracker) Update(topicID, subtopicID string, correct bool, responseTime time.Duration) float64 {
	key := skillKey(topicID, subtopicID)
	rec, ok := t.records[key]
	if !ok {
		rec = newEMARecord(topicID, subtopicID)
		t.records[key] = rec
	}

	performance := 0.0
	if correct {
		performance = 1.0
		if responseTime > 0 {
			performance = minFloat64(1.0, performance*timeMultiplier(responseTime))
		}
	}

	rec.Mastery = t.alpha*performance + (1-t.alpha)*rec.Mastery

	rec.Attempts++
	if correct {
		rec.Correct++
		rec.Streak++
		if rec.Streak > rec.BestStreak {
			rec.BestStreak = rec.Streak
		}
	} else {
		rec.Streak = 0
	}
	rec.Performances.Append(performance)
	rec.LastUpdated = time.Now().UTC()

	return rec.Mastery
}

// timeMultiplier maps a response time to a performance weight in [0.8, 1.1].
func timeMultiplier(responseTime time.Duration) float64 {
	switch {
	case responseTime < fastThreshold:
		bonus := 1.0 + float64(fastThreshold-responseTime)/float64(fastThreshold)*0.1
		return minFloat64(1.1, bonus)
	case responseTime < slowThreshold:
		return 1.0
	case responseTime < verySlowThreshold:
		penalty := float64(responseTime-slowThreshold) / float64(verySlowThreshold-slowThreshold) * 0.1
		return maxFloat64(0.9, 1.0-penalty)
	default:
		return 0.8
	}
}

// RecommendedDifficulty maps mastery to question difficulty with a
// piecewise-linear curve. Each band's output range sits slightly above its
// mastery range (the challenge offset) so learners are always mildly
// stretched rather than exactly matched.
func (t *EMATracker) RecommendedDifficulty(topicID, subtopicID string) float64 {
	return MasteryToDifficulty(t.Mastery(topicID, subtopicID))
}

// MasteryToDifficulty is the standalone form of the EMA difficulty curve,
// usable without a tracker instance.
func MasteryToDifficulty(mastery float64) float64 {
	switch {
	case mastery < 0.2:
		return 0.1 + mastery/0.2*0.15
	case mastery < 0.4:
		return 0.25 + (mastery-0.2)/0.2*0.15
	case mastery < 0.6:
		return 0.4 + (mastery-0.4)/0.2*0.15
	case mastery < 0.8:
		return 0.55 + (mastery-0.6)/0.2*0.15
	case mastery < 0.9:
		return 0.7 + (mastery-0.8)/0.1*0.15
	default:
		return 0.85 + minFloat64(1, (mastery-0.9)/0.1)*0.15
	}
}

// Level returns the mastery band for the skill.
func (t *EMATracker) Level(topicID, subtopicID string) MasteryLevel {
	return LevelFor(t.Mastery(topicID, subtopicID))
}

// Records returns a copy of the record map keyed by skill.
func (t *EMATracker) Records() map[string]*EMARecord {
	out := make(map[string]*EMARecord, len(t.records))
	for k, v := range t.records {
		out[k] = v
	}
	return out
}

// TopicSummaryFor aggregates every record whose topic matches, including
// subtopic records.
func (t *EMATracker) TopicSummaryFor(topicID string) TopicSummary {
	var records []*EMARecord
	for _, rec := range t.records {
		if rec.TopicID == topicID {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return TopicSummary{TopicID: topicID, AverageMastery: initialEMAMastery}
	}

	summary := TopicSummary{TopicID: topicID, SubtopicCount: len(records)}
	var masterySum float64
	for _, rec := range records {
		masterySum += rec.Mastery
		summary.TotalAttempts += rec.Attempts
		summary.TotalCorrect += rec.Correct
	}
	summary.AverageMastery = masterySum / float64(len(records))
	if summary.TotalAttempts > 0 {
		summary.Accuracy = float64(summary.TotalCorrect) / float64(summary.TotalAttempts)
	}
	return summary
}

// Reset forgets a single skill.
func (t *EMATracker) Reset(topicID, subtopicID string) {
	delete(t.records, skillKey(topicID, subtopicID))
}

// ResetAll forgets every skill.
func (t *EMATracker) ResetAll() {
	t.records = make(map[string]*EMARecord)
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
