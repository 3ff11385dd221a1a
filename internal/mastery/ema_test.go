package mastery

import (
	"math"
	"testing"
	"time"
)

func TestNewEMATrackerValidatesAlpha(t *testing.T) {
	tests := []struct {
		alpha   float64
		wantErr bool
	}{
		{0.3, false},
		{0.01, false},
		{0.99, false},
		{0, true},
		{1, true},
		{-0.2, true},
		{1.5, true},
	}

	for _, tt := range tests {
		_, err := NewEMATracker(tt.alpha)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewEMATracker(%v) error = %v, wantErr %v", tt.alpha, err, tt.wantErr)
		}
	}
}

func TestEMAUpdateFormula(t *testing.T) {
	tracker, err := NewEMATracker(0.3)
	if err != nil {
		t.Fatal(err)
	}

	// 0.3*1 + 0.7*0.5 = 0.65
	got := tracker.Update("fractions", "", true, 0)
	if math.Abs(got-0.65) > 1e-12 {
		t.Errorf("mastery after first correct = %v, want 0.65", got)
	}

	// 0.3*0 + 0.7*0.65 = 0.455
	got = tracker.Update("fractions", "", false, 0)
	if math.Abs(got-0.455) > 1e-12 {
		t.Errorf("mastery after incorrect = %v, want 0.455", got)
	}
}

func TestEMAConvergence(t *testing.T) {
	tracker, err := NewEMATracker(0.3)
	if err != nil {
		t.Fatal(err)
	}

	prev := tracker.Mastery("algebra", "")
	for i := 0; i < 50; i++ {
		m := tracker.Update("algebra", "", true, 0)
		if m <= prev || m > 1 {
			t.Fatalf("step %d: mastery %v not strictly increasing within (prev, 1]", i, m)
		}
		prev = m
	}
	if prev < 0.99 {
		t.Errorf("mastery after 50 correct = %v, want near 1", prev)
	}

	tracker.ResetAll()
	prev = tracker.Mastery("algebra", "")
	for i := 0; i < 50; i++ {
		m := tracker.Update("algebra", "", false, 0)
		if m >= prev || m < 0 {
			t.Fatalf("step %d: mastery %v not strictly decreasing within [0, prev)", i, m)
		}
		prev = m
	}
	if prev > 0.01 {
		t.Errorf("mastery after 50 incorrect = %v, want near 0", prev)
	}
}

func TestTimeMultiplier(t *testing.T) {
	tests := []struct {
		name string
		rt   time.Duration
		want float64
	}{
		{"instant", 1 * time.Millisecond, 1.09998},
		{"fast", 2500 * time.Millisecond, 1.05},
		{"boundary fast", 5 * time.Second, 1.0},
		{"normal", 15 * time.Second, 1.0},
		{"slow midpoint", 45 * time.Second, 0.95},
		{"very slow", 90 * time.Second, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timeMultiplier(tt.rt)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("timeMultiplier(%v) = %v, want %v", tt.rt, got, tt.want)
			}
		})
	}
}

func TestEMATimeBonusOnlyAffectsCorrect(t *testing.T) {
	fast, err := NewEMATracker(0.3)
	if err != nil {
		t.Fatal(err)
	}
	slow, err := NewEMATracker(0.3)
	if err != nil {
		t.Fatal(err)
	}

	// Incorrect answers score zero regardless of speed.
	fastMastery := fast.Update("geometry", "", false, 1*time.Second)
	slowMastery := slow.Update("geometry", "", false, 2*time.Minute)
	if fastMastery != slowMastery {
		t.Errorf("incorrect fast %v != incorrect slow %v; time must not affect incorrect", fastMastery, slowMastery)
	}

	// A fast correct answer is capped: performance never exceeds 1.0.
	fast.ResetAll()
	m := fast.Update("geometry", "", true, 1*time.Millisecond)
	if m > 0.3*1.0+0.7*0.5+1e-12 {
		t.Errorf("fast correct mastery = %v, want capped at 0.65", m)
	}

	// A very slow correct answer is dampened below a normal-speed one.
	slow.ResetAll()
	normal, err := NewEMATracker(0.3)
	if err != nil {
		t.Fatal(err)
	}
	slowM := slow.Update("geometry", "", true, 2*time.Minute)
	normalM := normal.Update("geometry", "", true, 10*time.Second)
	if slowM >= normalM {
		t.Errorf("slow correct %v, normal correct %v; want slow < normal", slowM, normalM)
	}
}

func TestMasteryToDifficulty(t *testing.T) {
	tests := []struct {
		mastery float64
		want    float64
	}{
		{0.0, 0.1},
		{0.1, 0.175},
		{0.2, 0.25},
		{0.4, 0.4},
		{0.5, 0.475},
		{0.6, 0.55},
		{0.8, 0.7},
		{0.9, 0.85},
		{1.0, 1.0},
	}

	for _, tt := range tests {
		got := MasteryToDifficulty(tt.mastery)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("MasteryToDifficulty(%v) = %v, want %v", tt.mastery, got, tt.want)
		}
	}

	// Challenge offset: output stays within [0, 1] and is monotone.
	prev := -1.0
	for m := 0.0; m <= 1.0; m += 0.05 {
		d := MasteryToDifficulty(m)
		if d < 0 || d > 1 {
			t.Fatalf("MasteryToDifficulty(%v) = %v outside [0, 1]", m, d)
		}
		if d < prev {
			t.Fatalf("difficulty not monotone at mastery %v", m)
		}
		prev = d
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		mastery float64
		want    MasteryLevel
	}{
		{0.0, LevelNovice},
		{0.14, LevelNovice},
		{0.15, LevelBeginner},
		{0.29, LevelBeginner},
		{0.30, LevelDeveloping},
		{0.49, LevelDeveloping},
		{0.50, LevelProficient},
		{0.69, LevelProficient},
		{0.70, LevelAdvanced},
		{0.84, LevelAdvanced},
		{0.85, LevelExpert},
		{1.0, LevelExpert},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.mastery); got != tt.want {
			t.Errorf("LevelFor(%v) = %v, want %v", tt.mastery, got, tt.want)
		}
	}
}

func TestEMATopicSummary(t *testing.T) {
	tracker, err := NewEMATracker(0.3)
	if err != nil {
		t.Fatal(err)
	}

	// Empty topic yields the neutral summary.
	empty := tracker.TopicSummaryFor("ratios")
	if empty.AverageMastery != 0.5 || empty.SubtopicCount != 0 {
		t.Errorf("empty summary = %+v", empty)
	}

	tracker.Update("fractions", "addition", true, 0)
	tracker.Update("fractions", "addition", true, 0)
	tracker.Update("fractions", "subtraction", false, 0)
	tracker.Update("algebra", "", true, 0)

	sum := tracker.TopicSummaryFor("fractions")
	if sum.SubtopicCount != 2 {
		t.Errorf("subtopic count = %d, want 2", sum.SubtopicCount)
	}
	if sum.TotalAttempts != 3 || sum.TotalCorrect != 2 {
		t.Errorf("attempts/correct = %d/%d, want 3/2", sum.TotalAttempts, sum.TotalCorrect)
	}
	if math.Abs(sum.Accuracy-2.0/3.0) > 1e-12 {
		t.Errorf("accuracy = %v, want 2/3", sum.Accuracy)
	}
}

func TestEMASnapshotRoundTrip(t *testing.T) {
	tracker, err := NewEMATracker(0.4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 25; i++ {
		tracker.Update("percentages", "", i%2 == 0, 0)
	}

	snap := tracker.Snapshot()
	if snap.Alpha != 0.4 {
		t.Errorf("snapshot alpha = %v, want 0.4", snap.Alpha)
	}
	if got := len(snap.Records["percentages"].History); got != persistedHistoryCap {
		t.Errorf("persisted history length = %d, want %d", got, persistedHistoryCap)
	}

	restored, err := RestoreEMA(snap)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := restored.Mastery("percentages", ""), tracker.Mastery("percentages", ""); got != want {
		t.Errorf("restored mastery = %v, want %v", got, want)
	}
}

func TestRestoreEMARejectsInvalidAlpha(t *testing.T) {
	if _, err := RestoreEMA(EMASnapshot{Alpha: 0}); err == nil {
		t.Fatal("RestoreEMA accepted alpha = 0")
	}
}
