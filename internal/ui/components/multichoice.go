package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/ui/theme"
)

// MultiChoice lets the learner pick one option. The correct option is
// unknown until Reveal is called with the grading result.
type MultiChoice struct {
	Options  []string
	Selected int
	chosen   int
	correct  int
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, chosen: -1, correct: -1}
}

// Update handles arrows, j/k, number keys 1-N and Enter. Once an option is
// chosen further input is ignored.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.chosen >= 0 {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.chosen = m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(m.Options) {
			m.Selected = int(key[0] - '1')
			m.chosen = m.Selected
		}
	}
	return m, nil
}

// Chosen returns the chosen option text once the learner has picked one.
func (m MultiChoice) Chosen() (string, bool) {
	if m.chosen < 0 {
		return "", false
	}
	return m.Options[m.chosen], true
}

// Unchoose clears the choice, e.g. when the submission was rejected.
func (m *MultiChoice) Unchoose() { m.chosen = -1 }

// Reveal marks answer as the correct option.
func (m *MultiChoice) Reveal(answer string) {
	for i, o := range m.Options {
		if o == answer {
			m.correct = i
			return
		}
	}
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && m.correct < 0 {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		var style lipgloss.Style
		switch {
		case m.correct >= 0 && i == m.correct:
			style = theme.Correct
		case m.correct >= 0 && i == m.chosen:
			style = theme.Incorrect
		case m.correct >= 0:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
