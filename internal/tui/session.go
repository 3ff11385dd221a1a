package tui

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/adaptivemath/mathgen/internal/engine"
	"github.com/adaptivemath/mathgen/internal/mastery"
	"github.com/adaptivemath/mathgen/internal/store"
)

// Options wires the practice session's dependencies.
type Options struct {
	Registry *engine.Registry
	Tracker  *mastery.BKTTracker
	// Store persists the tracker on session end. Nil disables persistence.
	Store *store.Store
	// Topic pins the whole session to one topic. Empty means the learner
	// picks from the menu (including mixed practice).
	Topic engine.QuestionType
	// Typed switches from multiple choice to a free text answer field.
	Typed bool
}

type phase int

const (
	phaseMenu phase = iota
	phaseQuestion
	phaseFeedback
	phaseQuitConfirm
	phaseSummary
)

const mixedLabel = "Mixed practice"

// Model is the root Bubble Tea model for a practice session.
type Model struct {
	registry *engine.Registry
	tracker  *mastery.BKTTracker
	store    *store.Store
	rng      *rand.Rand

	phase  phase
	topics []engine.QuestionType
	menu   menu
	mixed  bool
	topic  engine.QuestionType

	question      *engine.GeneratedQuestion
	choice        multiChoice
	typed         bool
	input         answerInput
	questionStart time.Time

	answered    int
	correct     int
	streak      int
	bestStreak  int
	lastCorrect bool
	lastMastery float64

	saveErr error
	genErr  error

	width  int
	height int
}

// menu is the topic picker.
type menu struct {
	items    []string
	selected int
}

func (m menu) update(msg tea.Msg) (menu, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}
	switch kmsg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.items)-1 {
			m.selected++
		}
	case "enter":
		return m, true
	}
	return m, false
}

// NewModel builds the session model. With a pinned topic the menu is skipped
// and the first question generates immediately.
func NewModel(opts Options) Model {
	topics := opts.Registry.Types()
	items := []string{mixedLabel}
	for _, t := range topics {
		items = append(items, topicLabel(t))
	}

	m := Model{
		registry: opts.Registry,
		tracker:  opts.Tracker,
		store:    opts.Store,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		phase:    phaseMenu,
		topics:   topics,
		menu:     menu{items: items},
		typed:    opts.Typed,
	}

	if opts.Topic != "" {
		m.topic = opts.Topic
		m.phase = phaseQuestion
		m.nextQuestion()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.typed && m.phase == phaseQuestion {
		return m.input.Init()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case saveDoneMsg:
		m.saveErr = msg.err
		m.phase = phaseSummary
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	// Non-key messages (cursor blink) go to the answer field.
	if m.typed && m.phase == phaseQuestion {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

type saveDoneMsg struct {
	err error
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseMenu:
		var chosen bool
		m.menu, chosen = m.menu.update(msg)
		if msg.String() == "esc" {
			return m, tea.Quit
		}
		if chosen {
			if m.menu.selected == 0 {
				m.mixed = true
			} else {
				m.topic = m.topics[m.menu.selected-1]
			}
			m.phase = phaseQuestion
			m.nextQuestion()
		}
		return m, nil

	case phaseQuestion:
		if msg.String() == "esc" {
			m.phase = phaseQuitConfirm
			return m, nil
		}
		if m.typed {
			if msg.String() == "enter" {
				if m.input.Value() != "" {
					m.gradeTypedAnswer()
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		var submitted bool
		m.choice, submitted = m.choice.Update(msg)
		if submitted {
			m.gradeAnswer()
		}
		return m, nil

	case phaseFeedback:
		m.phase = phaseQuestion
		m.nextQuestion()
		return m, nil

	case phaseQuitConfirm:
		switch msg.String() {
		case "y", "Y":
			return m, m.saveTracker()
		case "n", "N", "esc":
			m.phase = phaseQuestion
			return m, nil
		}
		return m, nil

	case phaseSummary:
		return m, tea.Quit
	}
	return m, nil
}

// nextQuestion picks the topic (random for mixed practice), asks the tracker
// for the target difficulty, and generates.
func (m *Model) nextQuestion() {
	topic := m.topic
	if m.mixed {
		topic = m.topics[m.rng.Intn(len(m.topics))]
	}

	difficulty := m.tracker.RecommendedDifficulty(string(topic), "")
	q, err := m.registry.Generate(topic, engine.Request{Difficulty: difficulty})
	if err != nil {
		m.genErr = err
		return
	}
	m.genErr = nil

	options := make([]string, len(q.AllOptions))
	correctIndex := 0
	for i, o := range q.AllOptions {
		options[i] = o.Value
		if o == q.CorrectAnswer {
			correctIndex = i
		}
	}

	m.question = q
	m.choice = newMultiChoice(options, correctIndex)
	if m.typed {
		m.input = newAnswerInput()
	}
	m.questionStart = time.Now()
}

// gradeAnswer updates the tracker with the result and response time, then
// shows feedback.
func (m *Model) gradeAnswer() {
	if m.question == nil {
		return
	}
	m.recordResult(m.choice.IsCorrect())
}

// gradeTypedAnswer checks the free text answer against the question's answer
// format, so "6/8" matches "3/4" and "2.50" matches "2.5".
func (m *Model) gradeTypedAnswer() {
	if m.question == nil {
		return
	}
	correct := m.question.CorrectAnswer.Matches(m.input.Value())
	m.input.submit(correct)
	m.recordResult(correct)
}

func (m *Model) recordResult(correct bool) {
	responseTime := time.Since(m.questionStart)

	m.lastMastery = m.tracker.Update(string(m.question.QuestionType), "", correct, responseTime)
	m.answered++
	m.lastCorrect = correct
	if correct {
		m.correct++
		m.streak++
		if m.streak > m.bestStreak {
			m.bestStreak = m.streak
		}
	} else {
		m.streak = 0
	}

	m.phase = phaseFeedback
}

// saveTracker persists the tracker snapshot, then moves to the summary.
func (m Model) saveTracker() tea.Cmd {
	st := m.store
	tracker := m.tracker
	return func() tea.Msg {
		if st == nil {
			return saveDoneMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return saveDoneMsg{err: st.SaveBKT(ctx, tracker)}
	}
}

// Run starts the practice session program.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "session error:", err)
		return err
	}
	return nil
}

// topicLabel renders a question type for display, e.g. "number_theory"
// becomes "Number Theory".
func topicLabel(t engine.QuestionType) string {
	label := []rune(string(t))
	up := true
	for i, r := range label {
		if r == '_' {
			label[i] = ' '
			up = true
			continue
		}
		if up && r >= 'a' && r <= 'z' {
			label[i] = r - 'a' + 'A'
		}
		up = false
	}
	return string(label)
}
