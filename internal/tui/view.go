package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adaptivemath/mathgen/internal/engine"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	var content string
	switch m.phase {
	case phaseMenu:
		content = m.renderMenu()
	case phaseQuestion:
		content = m.renderQuestion()
	case phaseFeedback:
		content = m.renderFeedback()
	case phaseQuitConfirm:
		content = m.renderQuitConfirm()
	case phaseSummary:
		content = m.renderSummary()
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}
	content = lipgloss.NewStyle().Width(m.width).Height(contentHeight).Render(content)

	v.SetContent(lipgloss.JoinVertical(lipgloss.Left, header, content, footer))
	return v
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("mathgen")
	sub := ""
	switch {
	case m.mixed:
		sub = "  ▸ " + mixedLabel
	case m.topic != "":
		sub = "  ▸ " + topicLabel(m.topic)
	}
	line := title + hintStyle.Render(sub)
	return chromeStyle.Width(m.width).Render(line)
}

func (m Model) renderFooter() string {
	var hints []string
	switch m.phase {
	case phaseMenu:
		hints = []string{"↑↓ navigate", "enter select", "esc quit"}
	case phaseQuestion:
		if m.typed {
			hints = []string{"type your answer", "enter submit", "esc end"}
		} else {
			hints = []string{"↑↓ navigate", "1-4 pick", "enter submit", "esc end"}
		}
	case phaseFeedback:
		hints = []string{"any key: next question"}
	case phaseQuitConfirm:
		hints = []string{"y end session", "n keep going"}
	case phaseSummary:
		hints = []string{"any key: exit"}
	}
	return chromeStyle.Width(m.width).Render(hintStyle.Render(strings.Join(hints, "  ·  ")))
}

func (m Model) renderMenu() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(questionStyle.Render("  What do you want to practice?"))
	b.WriteString("\n\n")

	for i, item := range m.menu.items {
		if i == m.menu.selected {
			b.WriteString(selectedStyle.Render("  ▸ " + item))
		} else {
			b.WriteString(unselectedStyle.Render("    " + item))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderQuestion() string {
	if m.genErr != nil {
		return incorrectStyle.Render(fmt.Sprintf("\n  Could not generate a question: %v", m.genErr))
	}
	if m.question == nil {
		return hintStyle.Render("\n  Preparing a question...")
	}

	var b strings.Builder
	b.WriteString("\n")

	info := fmt.Sprintf("  Question %d", m.answered+1)
	if m.answered > 0 {
		info += hintStyle.Render(fmt.Sprintf("   %d/%d correct", m.correct, m.answered))
	}
	if m.streak >= 3 {
		info += accentStyle.Render(fmt.Sprintf("   streak %d", m.streak))
	}
	b.WriteString(hintStyle.Render(info))
	b.WriteString("\n\n")

	b.WriteString("  " + questionStyle.Render(m.question.Expression))
	b.WriteString("\n")
	b.WriteString("  " + hintStyle.Render(string(m.question.DifficultyTier)))
	b.WriteString("\n\n")

	if m.typed {
		b.WriteString("  " + m.input.View())
	} else {
		b.WriteString(indent(m.choice.View(), 2))
	}
	return b.String()
}

func (m Model) renderFeedback() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.lastCorrect {
		b.WriteString("  " + correctStyle.Render("Correct!"))
	} else {
		b.WriteString("  " + incorrectStyle.Render("Not quite"))
		if m.question != nil {
			b.WriteString("\n  " + hintStyle.Render("Answer: "+m.question.CorrectAnswer.Value))
		}
	}
	b.WriteString("\n\n")

	topic := m.topic
	if m.question != nil {
		topic = m.question.QuestionType
	}
	b.WriteString("  " + unselectedStyle.Render(topicLabel(topic)+" mastery"))
	b.WriteString("\n")
	b.WriteString("  " + masteryBar(m.lastMastery, barWidth(m.width)))
	b.WriteString("\n\n")

	b.WriteString("  " + hintStyle.Render("Press any key to continue..."))
	return b.String()
}

func (m Model) renderQuitConfirm() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString("  " + questionStyle.Render("End the session?"))
	b.WriteString("\n")
	b.WriteString("  " + hintStyle.Render("Your progress will be saved."))
	b.WriteString("\n\n")
	b.WriteString("  " + correctStyle.Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString("  " + selectedStyle.Render("[N] No, keep going"))
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Session summary"))
	b.WriteString("\n\n")

	accuracy := 0.0
	if m.answered > 0 {
		accuracy = float64(m.correct) / float64(m.answered)
	}
	b.WriteString(fmt.Sprintf("  Questions answered: %d\n", m.answered))
	b.WriteString(fmt.Sprintf("  Correct: %d (%.0f%%)\n", m.correct, accuracy*100))
	b.WriteString(fmt.Sprintf("  Best streak: %d\n", m.bestStreak))
	b.WriteString("\n")

	records := m.tracker.Records()
	if len(records) > 0 {
		b.WriteString("  " + unselectedStyle.Render("Mastery by skill") + "\n")
		for _, t := range m.topics {
			rec, ok := records[string(t)]
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("  %-22s %s\n", topicLabel(t), masteryBar(rec.Mastery, barWidth(m.width))))
		}
		b.WriteString("\n")
	}

	if m.saveErr != nil {
		b.WriteString("  " + incorrectStyle.Render(fmt.Sprintf("Save failed: %v", m.saveErr)))
	} else if m.store != nil {
		b.WriteString("  " + hintStyle.Render("Progress saved."))
	}
	return b.String()
}

// masteryBar renders a horizontal bar for a [0,1] mastery value.
func masteryBar(mastery float64, width int) string {
	mastery = engine.Clamp(mastery, 0, 1)
	filled := int(float64(width) * mastery)
	empty := width - filled

	bar := lipgloss.NewStyle().Background(colorBar).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(colorBarBg).Render(strings.Repeat(" ", empty))
	return bar + hintStyle.Render(fmt.Sprintf("  %d%%", int(mastery*100)))
}

func barWidth(termWidth int) int {
	w := termWidth - 40
	if w < 10 {
		w = 10
	}
	if w > 40 {
		w = 40
	}
	return w
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
