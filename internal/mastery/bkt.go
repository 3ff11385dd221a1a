package mastery

import (
	"fmt"
	"time"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// BKTParams holds the four Bayesian Knowledge Tracing parameters for a skill
// (Corbett & Anderson 1994): prior knowledge P(L0), learn rate P(T), guess
// rate P(G) and slip rate P(S).
type BKTParams struct {
	PriorKnowledge float64 `json:"p_l0"`
	LearnRate      float64 `json:"p_t"`
	GuessRate      float64 `json:"p_g"`
	SlipRate       float64 `json:"p_s"`
}

// DefaultBKTParams returns the standard parameter set used when a caller has
// no per-skill calibration.
func DefaultBKTParams() BKTParams {
	return BKTParams{
		PriorKnowledge: 0.1,
		LearnRate:      0.3,
		GuessRate:      0.25,
		SlipRate:       0.1,
	}
}

// Validate rejects out-of-range probabilities and the non-identifiable
// region P(G) + P(S) >= 1, where a correct answer carries no evidence of
// mastery.
func (p BKTParams) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"P(L0)", p.PriorKnowledge},
		{"P(T)", p.LearnRate},
		{"P(G)", p.GuessRate},
		{"P(S)", p.SlipRate},
	} {
		if v.value < 0 || v.value > 1 {
			return fmt.Errorf("bkt: %s = %v outside [0, 1]", v.name, v.value)
		}
	}
	if p.GuessRate+p.SlipRate >= 1 {
		return fmt.Errorf("bkt: P(G) + P(S) = %v must be < 1", p.GuessRate+p.SlipRate)
	}
	return nil
}

// BKTRecord tracks the latent mastery estimate and response statistics for
// one skill.
type BKTRecord struct {
	SkillID    string
	TopicID    string
	SubtopicID string

	Mastery float64
	Params  BKTParams

	Attempts   int
	Correct    int
	Streak     int
	BestStreak int

	Responses   *History[bool]
	MasteryPath *History[float64]

	CreatedAt   time.Time
	LastUpdated time.Time
}

// Accuracy returns the overall fraction of correct responses.
func (r *BKTRecord) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// Tier buckets the mastery estimate into the five 0.2-wide tiers.
func (r *BKTRecord) Tier() engine.DifficultyTier {
	return engine.TierFor(r.Mastery)
}

// Mastered reports whether the skill has crossed the mastery threshold.
func (r *BKTRecord) Mastered() bool {
	return r.Mastery >= MasteryTarget
}

// MasteryTarget is the probability at which a skill counts as mastered.
const MasteryTarget = 0.95

// BKTTracker estimates per-skill mastery with the classic two-state BKT
// update: a Bayesian posterior over the latent "knows the skill" variable
// conditioned on the observed response, followed by the learning transition.
//
// The tracker performs no internal locking. Callers serving concurrent
// learners must serialize updates to the same skill key externally; updates
// to different keys are independent.
type BKTTracker struct {
	defaults BKTParams
	records  map[string]*BKTRecord
}

// NewBKTTracker builds a tracker with the given default parameters,
// rejecting invalid ones up front rather than producing drifting mastery
// estimates later.
func NewBKTTracker(params BKTParams) (*BKTTracker, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &BKTTracker{
		defaults: params,
		records:  make(map[string]*BKTRecord),
	}, nil
}

// Defaults returns the tracker's default parameter set.
func (t *BKTTracker) Defaults() BKTParams { return t.defaults }

// Mastery returns P(L) for the skill, or the prior for unseen skills.
func (t *BKTTracker) Mastery(topicID, subtopicID string) float64 {
	if rec, ok := t.records[skillKey(topicID, subtopicID)]; ok {
		return rec.Mastery
	}
	return t.defaults.PriorKnowledge
}

// Record returns the stored record for the skill, or a fresh one at the
// prior if the skill has not been practiced. The fresh record is not
// inserted; only Update creates state.
func (t *BKTTracker) Record(topicID, subtopicID string) *BKTRecord {
	if rec, ok := t.records[skillKey(topicID, subtopicID)]; ok {
		return rec
	}
	return t.newRecord(topicID, subtopicID)
}

func (t *BKTTracker) newRecord(topicID, subtopicID string) *BKTRecord {
	now := time.Now().UTC()
	return &BKTRecord{
		SkillID:     skillKey(topicID, subtopicID),
		TopicID:     topicID,
		SubtopicID:  subtopicID,
		Mastery:     t.defaults.PriorKnowledge,
		Params:      t.defaults,
		Responses:   NewHistory[bool](liveHistoryCap),
		MasteryPath: NewHistory[float64](liveHistoryCap),
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// Update applies one observed response and returns the new mastery. The
// response time is accepted for interface compatibility but ignored:
// standard BKT conditions only on correctness.
//
// The posterior must be computed before the learning transition: reversing
// the order changes the meaning of P(T) from "probability of learning from
// this practice opportunity" to a mixed quantity.
func (t *BKTTracker) Update(topicID, subtopicID string, correct bool, _ time.Duration) float64 {
	key := skillKey(topicID, subtopicID)
	rec, ok := t.records[key]
	if !ok {
		rec = t.newRecord(topicID, subtopicID)
		t.records[key] = rec
	}

	rec.Mastery = engine.Clamp(bktStep(rec.Mastery, rec.Params, correct), 0, 1)

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
	rec.Responses.Append(correct)
	rec.MasteryPath.Append(rec.Mastery)
	rec.LastUpdated = time.Now().UTC()

	return rec.Mastery
}

// bktStep runs one posterior-then-transition update from prior mastery pl.
// A zero evidence probability leaves the prior unchanged.
func bktStep(pl float64, p BKTParams, correct bool) float64 {
	posterior := pl
	if correct {
		pCorrect := pl*(1-p.SlipRate) + (1-pl)*p.GuessRate
		if pCorrect > 0 {
			posterior = pl * (1 - p.SlipRate) / pCorrect
		}
	} else {
		pIncorrect := pl*p.SlipRate + (1-pl)*(1-p.GuessRate)
		if pIncorrect > 0 {
			posterior = pl * p.SlipRate / pIncorrect
		}
	}
	return posterior + (1-posterior)*p.LearnRate
}

// RecommendedDifficulty maps mastery to a difficulty in [0,1]. Each 0.2-wide
// mastery tier owns a 0.2-wide difficulty range, and the exact mastery
// position interpolates within the tier so difficulty moves smoothly rather
// than jumping at tier boundaries. Skills with no practice history are
// floored at 0.3 so new users see more than the easiest operations.
func (t *BKTTracker) RecommendedDifficulty(topicID, subtopicID string) float64 {
	mastery := t.Mastery(topicID, subtopicID)

	tier := int(mastery / 0.2)
	if tier > 4 {
		tier = 4
	}
	lo := float64(tier) * 0.2
	position := engine.Clamp((mastery-lo)/0.2, 0, 1)
	difficulty := lo + position*0.2

	rec, ok := t.records[skillKey(topicID, subtopicID)]
	if !ok || rec.Attempts == 0 {
		if difficulty < 0.3 {
			difficulty = 0.3
		}
	}
	return difficulty
}

// PredictCorrect returns the probability of a correct response on the next
// question: P(L)·(1−P(S)) + (1−P(L))·P(G).
func (t *BKTTracker) PredictCorrect(topicID, subtopicID string) float64 {
	rec := t.Record(topicID, subtopicID)
	return rec.Mastery*(1-rec.Params.SlipRate) + (1-rec.Mastery)*rec.Params.GuessRate
}

// EstimateQuestionsToMastery simulates all-correct responses from the
// current mastery and returns how many are needed to reach the target,
// capped at maxQuestions. The simulation never touches real state.
func (t *BKTTracker) EstimateQuestionsToMastery(topicID, subtopicID string, target float64, maxQuestions int) int {
	if target <= 0 {
		target = MasteryTarget
	}
	if maxQuestions <= 0 {
		maxQuestions = 100
	}
	rec := t.Record(topicID, subtopicID)
	pl := rec.Mastery

	questions := 0
	for pl < target && questions < maxQuestions {
		pl = bktStep(pl, rec.Params, true)
		questions++
	}
	return questions
}

// Records returns a copy of the record map keyed by skill.
func (t *BKTTracker) Records() map[string]*BKTRecord {
	out := make(map[string]*BKTRecord, len(t.records))
	for k, v := range t.records {
		out[k] = v
	}
	return out
}

// Reset forgets a single skill.
func (t *BKTTracker) Reset(topicID, subtopicID string) {
	delete(t.records, skillKey(topicID, subtopicID))
}

// ResetAll forgets every skill.
func (t *BKTTracker) ResetAll() {
	t.records = make(map[string]*BKTRecord)
}
