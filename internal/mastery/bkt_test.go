package mastery

import (
	"math"
	"testing"
)

func TestBKTParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  BKTParams
		wantErr bool
	}{
		{"defaults", DefaultBKTParams(), false},
		{"all zero guess slip", BKTParams{PriorKnowledge: 0.5, LearnRate: 0.5}, false},
		{"prior above one", BKTParams{PriorKnowledge: 1.5, LearnRate: 0.3, GuessRate: 0.2, SlipRate: 0.1}, true},
		{"negative learn rate", BKTParams{PriorKnowledge: 0.1, LearnRate: -0.1, GuessRate: 0.2, SlipRate: 0.1}, true},
		{"non-identifiable", BKTParams{PriorKnowledge: 0.1, LearnRate: 0.3, GuessRate: 0.6, SlipRate: 0.6}, true},
		{"guess plus slip exactly one", BKTParams{PriorKnowledge: 0.1, LearnRate: 0.3, GuessRate: 0.5, SlipRate: 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewBKTTrackerRejectsInvalidParams(t *testing.T) {
	params := DefaultBKTParams()
	params.GuessRate = 0.6
	params.SlipRate = 0.6
	if _, err := NewBKTTracker(params); err == nil {
		t.Fatal("NewBKTTracker accepted P(G)+P(S) >= 1")
	}
}

func TestBKTFirstCorrectRaisesMasteryAbovePrior(t *testing.T) {
	tracker, err := NewBKTTracker(DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}

	mastery := tracker.Update("fractions", "", true, 0)
	if mastery <= DefaultBKTParams().PriorKnowledge {
		t.Errorf("mastery after first correct = %v, want > %v", mastery, DefaultBKTParams().PriorKnowledge)
	}
}

func TestBKTDirectionality(t *testing.T) {
	params := DefaultBKTParams()

	up := bktStep(0.5, params, true)
	if up <= 0.5 {
		t.Errorf("correct observation from 0.5: mastery = %v, want > 0.5", up)
	}

	down := bktStep(0.5, params, false)
	if down >= 0.5 {
		t.Errorf("incorrect observation from 0.5: mastery = %v, want < 0.5", down)
	}
}

func TestBKTMasteryStaysBounded(t *testing.T) {
	tracker, err := NewBKTTracker(DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}

	// Alternating and streaky sequences both stay in [0, 1].
	sequences := [][]bool{
		{true, true, true, true, true, true, true, true, true, true},
		{false, false, false, false, false, false, false, false},
		{true, false, true, false, true, false, true, false},
		{false, true, true, false, false, true, true, true},
	}

	for i, seq := range sequences {
		tracker.ResetAll()
		for _, correct := range seq {
			m := tracker.Update("algebra", "", correct, 0)
			if m < 0 || m > 1 {
				t.Fatalf("sequence %d: mastery %v outside [0, 1]", i, m)
			}
		}
	}
}

func TestBKTUpdateOrderPosteriorThenTransition(t *testing.T) {
	// Hand-computed with defaults from mastery 0.5, correct:
	// P(correct) = 0.5*0.9 + 0.5*0.25 = 0.575
	// posterior  = 0.45/0.575 = 0.782608...
	// new        = posterior + (1-posterior)*0.3 = 0.847826...
	got := bktStep(0.5, DefaultBKTParams(), true)
	want := 0.45/0.575 + (1-0.45/0.575)*0.3
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("bktStep(0.5, correct) = %v, want %v", got, want)
	}
}

func TestBKTRecommendedDifficulty(t *testing.T) {
	tracker, err := NewBKTTracker(DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}

	// No history: floored at 0.3 even though mastery sits at the 0.1 prior.
	if got := tracker.RecommendedDifficulty("geometry", ""); got != 0.3 {
		t.Errorf("new user difficulty = %v, want 0.3", got)
	}

	// After practice the floor no longer applies and difficulty follows the
	// tier interpolation: difficulty == mastery under the 0.2/0.2 mapping.
	for i := 0; i < 3; i++ {
		tracker.Update("geometry", "", false, 0)
	}
	mastery := tracker.Mastery("geometry", "")
	got := tracker.RecommendedDifficulty("geometry", "")
	if math.Abs(got-mastery) > 1e-9 {
		t.Errorf("practiced difficulty = %v, want mastery %v", got, mastery)
	}
}

func TestBKTRecommendedDifficultyMonotonic(t *testing.T) {
	tracker, err := NewBKTTracker(DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}

	prev := -1.0
	for i := 0; i < 10; i++ {
		tracker.Update("ratios", "", true, 0)
		d := tracker.RecommendedDifficulty("ratios", "")
		if d < prev {
			t.Fatalf("difficulty decreased after a correct answer: %v -> %v", prev, d)
		}
		prev = d
	}
}

func TestBKTPredictCorrect(t *testing.T) {
	tracker, err := NewBKTTracker(DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}

	// Unseen skill: P(L)=0.1, so 0.1*0.9 + 0.9*0.25 = 0.315.
	got := tracker.PredictCorrect("exponents", "")
	if math.Abs(got-0.315) > 1e-12 {
		t.Errorf("PredictCorrect = %v, want 0.315", got)
	}

	tracker.Update("exponents", "", true, 0)
	if after := tracker.PredictCorrect("exponents", ""); after <= got {
		t.Errorf("PredictCorrect after a correct answer = %v, want > %v", after, got)
	}
}

func TestBKTEstimateQuestionsToMastery(t *testing.T) {
	tracker, err := NewBKTTracker(DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}

	n := tracker.EstimateQuestionsToMastery("statistics", "", 0.95, 100)
	if n <= 0 || n > 100 {
		t.Fatalf("estimate = %d, want within (0, 100]", n)
	}

	// Simulation is pure: real mastery is untouched.
	if m := tracker.Mastery("statistics", ""); m != DefaultBKTParams().PriorKnowledge {
		t.Errorf("mastery after estimate = %v, want prior %v", m, DefaultBKTParams().PriorKnowledge)
	}

	// Replaying the estimate against real updates reaches the target.
	for i := 0; i < n; i++ {
		tracker.Update("statistics", "", true, 0)
	}
	if m := tracker.Mastery("statistics", ""); m < 0.95 {
		t.Errorf("mastery after %d correct answers = %v, want >= 0.95", n, m)
	}
}

func TestBKTStreaksAndCounters(t *testing.T) {
	tracker, err := NewBKTTracker(DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}

	for _, correct := range []bool{true, true, true, false, true, true} {
		tracker.Update("arithmetic", "carrying", correct, 0)
	}

	rec := tracker.Record("arithmetic", "carrying")
	if rec.Attempts != 6 || rec.Correct != 5 {
		t.Errorf("attempts/correct = %d/%d, want 6/5", rec.Attempts, rec.Correct)
	}
	if rec.Streak != 2 {
		t.Errorf("streak = %d, want 2", rec.Streak)
	}
	if rec.BestStreak != 3 {
		t.Errorf("best streak = %d, want 3", rec.BestStreak)
	}
	if rec.Responses.Len() != 6 || rec.MasteryPath.Len() != 6 {
		t.Errorf("history lengths = %d/%d, want 6/6", rec.Responses.Len(), rec.MasteryPath.Len())
	}
}

func TestBKTSubtopicKeysAreIndependent(t *testing.T) {
	tracker, err := NewBKTTracker(DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}

	tracker.Update("fractions", "addition", true, 0)
	if m := tracker.Mastery("fractions", "subtraction"); m != DefaultBKTParams().PriorKnowledge {
		t.Errorf("untouched subtopic mastery = %v, want prior", m)
	}
	if m := tracker.Mastery("fractions", ""); m != DefaultBKTParams().PriorKnowledge {
		t.Errorf("bare topic mastery = %v, want prior", m)
	}
}

func TestBKTReset(t *testing.T) {
	tracker, err := NewBKTTracker(DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}

	tracker.Update("algebra", "", true, 0)
	tracker.Update("geometry", "", true, 0)

	tracker.Reset("algebra", "")
	if m := tracker.Mastery("algebra", ""); m != DefaultBKTParams().PriorKnowledge {
		t.Errorf("mastery after reset = %v, want prior", m)
	}
	if m := tracker.Mastery("geometry", ""); m == DefaultBKTParams().PriorKnowledge {
		t.Error("reset of one skill cleared another")
	}

	tracker.ResetAll()
	if len(tracker.Records()) != 0 {
		t.Errorf("records after ResetAll = %d, want 0", len(tracker.Records()))
	}
}

func TestBKTSnapshotRoundTrip(t *testing.T) {
	tracker, err := NewBKTTracker(DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 30; i++ {
		tracker.Update("fractions", "", i%3 != 0, 0)
	}
	tracker.Update("algebra", "linear", true, 0)

	snap := tracker.Snapshot()
	if got := len(snap.Records["fractions"].ResponseHistory); got != persistedHistoryCap {
		t.Errorf("persisted history length = %d, want %d", got, persistedHistoryCap)
	}

	restored, err := RestoreBKT(snap)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := restored.Mastery("fractions", ""), tracker.Mastery("fractions", ""); got != want {
		t.Errorf("restored mastery = %v, want %v", got, want)
	}
	rec := restored.Record("algebra", "linear")
	if rec.Attempts != 1 || rec.Correct != 1 {
		t.Errorf("restored record attempts/correct = %d/%d, want 1/1", rec.Attempts, rec.Correct)
	}
}

func TestRestoreBKTRejectsInvalidRecordParams(t *testing.T) {
	snap := BKTSnapshot{
		Defaults: DefaultBKTParams(),
		Records: map[string]BKTRecordSnapshot{
			"bad": {
				SkillID: "bad", TopicID: "bad", Mastery: 0.5,
				Params: BKTParams{PriorKnowledge: 0.1, LearnRate: 0.3, GuessRate: 0.7, SlipRate: 0.7},
			},
		},
	}
	if _, err := RestoreBKT(snap); err == nil {
		t.Fatal("RestoreBKT accepted a record with non-identifiable params")
	}
}
