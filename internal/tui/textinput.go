package tui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// answerInput wraps bubbles/textinput for the typed-answer mode. Math answers
// can be negative, fractional ("3/4") or symbolic ("√13"), so input is not
// restricted to digits.
type answerInput struct {
	model     textinput.Model
	submitted bool
	correct   bool
}

func newAnswerInput() answerInput {
	ti := textinput.New()
	ti.Placeholder = "Type your answer..."
	ti.CharLimit = 32
	ti.Focus()
	return answerInput{model: ti}
}

func (a answerInput) Init() tea.Cmd {
	return a.model.Focus()
}

func (a answerInput) Update(msg tea.Msg) (answerInput, tea.Cmd) {
	if a.submitted {
		return a, nil
	}
	var cmd tea.Cmd
	a.model, cmd = a.model.Update(msg)
	return a, cmd
}

func (a answerInput) View() string {
	view := a.model.View()
	if a.submitted {
		if a.correct {
			view += " " + correctStyle.Render("✓")
		} else {
			view += " " + incorrectStyle.Render("✗")
		}
	}
	return view
}

func (a answerInput) Value() string {
	return a.model.Value()
}

func (a *answerInput) submit(correct bool) {
	a.submitted = true
	a.correct = correct
}
