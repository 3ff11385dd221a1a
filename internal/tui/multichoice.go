package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
)

// multiChoice is the answer selector for one question. Options hold the
// rendered answer values in their shuffled presentation order.
type multiChoice struct {
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

func newMultiChoice(options []string, correctIndex int) multiChoice {
	return multiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Update handles navigation and selection keys. Number keys select and
// submit in one stroke.
func (m multiChoice) Update(msg tea.Msg) (multiChoice, bool) {
	if m.Submitted {
		return m, false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
		return m, true
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(m.Options) {
				m.Selected = idx
				m.Submitted = true
				m.ChosenIndex = idx
				return m, true
			}
		}
	}

	return m, false
}

// View renders the option list. After submission the correct option is
// highlighted green and a wrong choice red.
func (m multiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		switch {
		case m.Submitted && i == m.CorrectIndex:
			s += correctStyle.Render(line) + "\n"
		case m.Submitted && i == m.ChosenIndex:
			s += incorrectStyle.Render(line) + "\n"
		case m.Submitted:
			s += hintStyle.Render(line) + "\n"
		case i == m.Selected:
			s += selectedStyle.Render(line) + "\n"
		default:
			s += unselectedStyle.Render(line) + "\n"
		}
	}
	return s
}

// IsCorrect reports whether the submitted choice was the correct one.
func (m multiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
