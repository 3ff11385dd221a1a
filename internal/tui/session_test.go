package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/adaptivemath/mathgen/internal/engine"
	"github.com/adaptivemath/mathgen/internal/generators"
	"github.com/adaptivemath/mathgen/internal/mastery"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testModel(t *testing.T, topic engine.QuestionType) Model {
	t.Helper()
	tracker, err := mastery.NewBKTTracker(mastery.DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(Options{
		Registry: generators.NewRegistry(),
		Tracker:  tracker,
		Topic:    topic,
	})
}

func TestTopicLabel(t *testing.T) {
	tests := []struct {
		in   engine.QuestionType
		want string
	}{
		{engine.TypeArithmetic, "Arithmetic"},
		{engine.TypeNumberTheory, "Number Theory"},
		{engine.TypeSystems, "Systems Of Equations"},
	}
	for _, tt := range tests {
		if got := topicLabel(tt.in); got != tt.want {
			t.Errorf("topicLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPinnedTopicSkipsMenu(t *testing.T) {
	m := testModel(t, engine.TypeFractions)
	if m.phase != phaseQuestion {
		t.Fatalf("phase = %d, want question phase", m.phase)
	}
	if m.question == nil {
		t.Fatal("no question generated for pinned topic")
	}
	if m.question.QuestionType != engine.TypeFractions {
		t.Errorf("question type %q, want fractions", m.question.QuestionType)
	}
}

func TestMenuSelectionStartsSession(t *testing.T) {
	m := testModel(t, "")
	if m.phase != phaseMenu {
		t.Fatalf("phase = %d, want menu phase", m.phase)
	}

	// Move past "Mixed practice" to the first topic and select it.
	next, _ := m.Update(specialKey(tea.KeyDown))
	m = next.(Model)
	next, _ = m.Update(specialKey(tea.KeyEnter))
	m = next.(Model)

	if m.phase != phaseQuestion {
		t.Fatalf("phase = %d, want question phase after selection", m.phase)
	}
	if m.topic != engine.AllQuestionTypes[0] {
		t.Errorf("topic %q, want %q", m.topic, engine.AllQuestionTypes[0])
	}
	if m.question == nil {
		t.Fatal("no question generated after selection")
	}
}

func TestMixedPracticeSelection(t *testing.T) {
	m := testModel(t, "")
	next, _ := m.Update(specialKey(tea.KeyEnter))
	m = next.(Model)

	if !m.mixed {
		t.Error("expected mixed practice mode")
	}
	if m.question == nil {
		t.Fatal("no question generated for mixed practice")
	}
}

func TestNumberKeySubmitsAnswer(t *testing.T) {
	m := testModel(t, engine.TypeArithmetic)

	next, _ := m.Update(keyPress('1'))
	m = next.(Model)

	if m.phase != phaseFeedback {
		t.Fatalf("phase = %d, want feedback after number key", m.phase)
	}
	if m.answered != 1 {
		t.Errorf("answered = %d, want 1", m.answered)
	}
	if m.tracker.Record(string(engine.TypeArithmetic), "").Attempts != 1 {
		t.Error("tracker was not updated")
	}
}

func TestCorrectAnswerRaisesMastery(t *testing.T) {
	m := testModel(t, engine.TypeAlgebra)
	prior := m.tracker.Mastery(string(engine.TypeAlgebra), "")

	// Select the known-correct option and submit.
	m.choice.Selected = m.choice.CorrectIndex
	next, _ := m.Update(specialKey(tea.KeyEnter))
	m = next.(Model)

	if !m.lastCorrect {
		t.Fatal("expected the correct option to grade as correct")
	}
	if got := m.tracker.Mastery(string(engine.TypeAlgebra), ""); got <= prior {
		t.Errorf("mastery %v after correct answer, want > prior %v", got, prior)
	}
}

func TestFeedbackAdvancesToNextQuestion(t *testing.T) {
	m := testModel(t, engine.TypeGeometry)
	next, _ := m.Update(keyPress('1'))
	m = next.(Model)

	next, _ = m.Update(keyPress(' '))
	m = next.(Model)

	if m.phase != phaseQuestion {
		t.Fatalf("phase = %d, want question phase after feedback", m.phase)
	}
	if m.question == nil {
		t.Fatal("no follow-up question generated")
	}
	if m.choice.Submitted {
		t.Error("new question should start unsubmitted")
	}
}

func TestQuitConfirmFlow(t *testing.T) {
	m := testModel(t, engine.TypePercentages)

	next, _ := m.Update(specialKey(tea.KeyEscape))
	m = next.(Model)
	if m.phase != phaseQuitConfirm {
		t.Fatalf("phase = %d, want quit confirm after esc", m.phase)
	}

	// N resumes the question.
	next, _ = m.Update(keyPress('n'))
	m = next.(Model)
	if m.phase != phaseQuestion {
		t.Fatalf("phase = %d, want question after declining", m.phase)
	}

	// Esc then Y ends the session: the save command fires, and its result
	// lands on the summary.
	next, _ = m.Update(specialKey(tea.KeyEscape))
	m = next.(Model)
	next, cmd := m.Update(keyPress('y'))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected a save command after confirming quit")
	}

	msg := cmd()
	done, ok := msg.(saveDoneMsg)
	if !ok {
		t.Fatalf("save command returned %T, want saveDoneMsg", msg)
	}
	if done.err != nil {
		t.Errorf("save without a store should be a no-op, got %v", done.err)
	}

	next, _ = m.Update(done)
	m = next.(Model)
	if m.phase != phaseSummary {
		t.Fatalf("phase = %d, want summary", m.phase)
	}

	_, cmd = m.Update(keyPress(' '))
	if cmd == nil {
		t.Error("expected quit command from the summary")
	}
}

func TestTypedAnswerGrading(t *testing.T) {
	tracker, err := mastery.NewBKTTracker(mastery.DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(Options{
		Registry: generators.NewRegistry(),
		Tracker:  tracker,
		Topic:    engine.TypeArithmetic,
		Typed:    true,
	})

	// Type the correct answer character by character and submit.
	for _, r := range m.question.CorrectAnswer.Value {
		next, _ := m.Update(keyPress(r))
		m = next.(Model)
	}
	want := m.question.CorrectAnswer.Value
	if got := m.input.Value(); got != want {
		t.Fatalf("input value %q, want %q", got, want)
	}

	next, _ := m.Update(specialKey(tea.KeyEnter))
	m = next.(Model)

	if m.phase != phaseFeedback {
		t.Fatalf("phase = %d, want feedback after submit", m.phase)
	}
	if !m.lastCorrect {
		t.Error("typing the exact answer should grade as correct")
	}
	if m.answered != 1 {
		t.Errorf("answered = %d, want 1", m.answered)
	}
}

func TestTypedAnswerEmptySubmitIgnored(t *testing.T) {
	tracker, err := mastery.NewBKTTracker(mastery.DefaultBKTParams())
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(Options{
		Registry: generators.NewRegistry(),
		Tracker:  tracker,
		Topic:    engine.TypeFractions,
		Typed:    true,
	})

	next, _ := m.Update(specialKey(tea.KeyEnter))
	m = next.(Model)

	if m.phase != phaseQuestion {
		t.Fatalf("phase = %d, empty submit should stay on the question", m.phase)
	}
	if m.answered != 0 {
		t.Error("empty submit must not count as an attempt")
	}
}

func TestMultiChoiceNavigation(t *testing.T) {
	mc := newMultiChoice([]string{"2", "3", "4", "5"}, 2)

	mc, submitted := mc.Update(specialKey(tea.KeyDown))
	if submitted || mc.Selected != 1 {
		t.Fatalf("selected = %d after down, want 1", mc.Selected)
	}
	mc, _ = mc.Update(specialKey(tea.KeyUp))
	if mc.Selected != 0 {
		t.Fatalf("selected = %d after up, want 0", mc.Selected)
	}
	mc, _ = mc.Update(specialKey(tea.KeyUp))
	if mc.Selected != 0 {
		t.Fatal("selection should not move above the first option")
	}

	mc, submitted = mc.Update(keyPress('3'))
	if !submitted || mc.ChosenIndex != 2 {
		t.Fatalf("chosen = %d after pressing 3, want 2", mc.ChosenIndex)
	}
	if !mc.IsCorrect() {
		t.Error("option 3 is the correct index")
	}

	// Further input after submission is ignored.
	mc, submitted = mc.Update(keyPress('1'))
	if submitted || mc.ChosenIndex != 2 {
		t.Error("submitted choice must not change")
	}
}

func TestMultiChoiceOutOfRangeNumberIgnored(t *testing.T) {
	mc := newMultiChoice([]string{"1", "2"}, 0)
	mc, submitted := mc.Update(keyPress('5'))
	if submitted || mc.Submitted {
		t.Error("out-of-range number key should not submit")
	}
}
