package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/ui/components"
	"github.com/abhisek/quizzy/internal/ui/layout"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

func (s *SessionScreen) renderQuestion(width int) string {
	q := s.question
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderProgress(width))
	b.WriteString("\n\n")

	header := lipgloss.NewStyle().Foreground(theme.TopicColor(string(q.Topic))).Bold(true).
		Render(fmt.Sprintf("Question %d of %d", q.Number, q.Of))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, header))
	b.WriteString("\n\n")

	text := theme.Body.Bold(true).Width(cw).Render(q.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Hint, width, "Select 1-4 or use arrows + Enter"))
	return b.String()
}

func (s *SessionScreen) renderProgress(width int) string {
	bar := components.NewProgressBar("Progress", s.answered, s.info.Target, min(width-8, 60))
	score := lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d", s.correct))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()+"   "+score)
}

func (s *SessionScreen) renderFeedback(width int) string {
	fb := s.feedback
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderProgress(width))
	b.WriteString("\n\n")

	if fb.Correct {
		b.WriteString(layout.Centered(theme.Correct, width, "Correct!"))
	} else {
		b.WriteString(layout.Centered(theme.Incorrect, width, "Not quite"))
		b.WriteString("\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
			"Correct answer: "+fb.CorrectAnswer))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	b.WriteString("\n")

	switch {
	case s.explanation != "":
		exp := theme.Body.Width(cw).Render(s.explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	case s.explaining:
		b.WriteString(layout.Centered(theme.Hint, width, "Asking the tutor for an explanation..."))
		b.WriteString("\n\n")
	}

	next := "Press any key for the next question..."
	if fb.Completed {
		next = "Session complete! Press any key to see your results..."
	}
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, next))
	return b.String()
}

func renderQuitConfirm(width, answered, target int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(theme.Body.Bold(true), width, "End session early?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		fmt.Sprintf("You have answered %d of %d. Unanswered questions are not scored.", answered, target)))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, "[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}

func renderLoading(width int) string {
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "\n\n\nPicking a question...")
}

func renderError(width int, errMsg string) string {
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
		fmt.Sprintf("\n\n\nError: %s\n\nPress any key to go back.", errMsg))
}
