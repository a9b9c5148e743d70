package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/summary"
	"github.com/abhisek/quizzy/internal/ui/layout"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

// SummaryScreen displays the session score and the questions missed.
type SummaryScreen struct {
	score  *summary.Score
	notice string
	missed []summary.Review
	offset int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. notice is an optional line shown under the
// title, e.g. why the session stopped early.
func New(score *summary.Score, notice string) *SummaryScreen {
	return &SummaryScreen{
		score:  score,
		notice: notice,
		missed: summary.FilterReviews(score.Reviews, summary.ReviewsIncorrect),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
	if len(s.missed) > 1 {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Review mistakes"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "down", "j":
			if s.offset < len(s.missed)-1 {
				s.offset++
			}
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sc := s.score
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	center := func(str string) string { return lipgloss.PlaceHorizontal(width, lipgloss.Center, str) }

	var b strings.Builder

	title := "Session complete!"
	if sc.State == "ended" {
		title = "Session ended"
	}
	b.WriteString(layout.Centered(theme.Title, width, title))
	b.WriteString("\n")
	if s.notice != "" {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Accent), width, s.notice))
		b.WriteString("\n")
	}
	b.WriteString(layout.Centered(dim, width,
		fmt.Sprintf("%s · %s · %s", sc.Topic, sc.Difficulty, sc.Elapsed)))
	b.WriteString("\n\n")

	grade := lipgloss.NewStyle().Foreground(theme.GradeColor(sc.Grade)).Bold(true).
		Render(fmt.Sprintf("Grade %s", sc.Grade))
	stats := fmt.Sprintf("%s     Score: %d/%d     Accuracy: %.1f%%     %.2f q/min",
		grade, sc.Correct, sc.Total, sc.Accuracy, sc.QuestionsPerMinute)
	b.WriteString(center(theme.Body.Render(stats)))
	b.WriteString("\n\n")

	if len(sc.ByDifficulty) > 0 {
		b.WriteString(center(dim.Render("By difficulty")))
		b.WriteString("\n")
		b.WriteString(center(divider))
		b.WriteString("\n")
		for _, d := range question.AllDifficulties() {
			if t, ok := sc.ByDifficulty[d]; ok {
				b.WriteString(center(theme.Body.Render(fmt.Sprintf("%-8s %d/%d  %5.1f%%", d, t.Correct, t.Total, t.Accuracy))))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if len(sc.Recommendations) > 0 {
		for _, r := range sc.Recommendations {
			b.WriteString(center(theme.Hint.Render("• " + r)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(s.missed) > 0 && !layout.IsCompactHeight(height) {
		b.WriteString(center(dim.Render(fmt.Sprintf("Mistakes (%d/%d)", s.offset+1, len(s.missed)))))
		b.WriteString("\n")
		b.WriteString(center(divider))
		b.WriteString("\n")
		b.WriteString(center(renderReview(s.missed[s.offset], min(width-8, 60))))
	}

	return b.String()
}

func renderReview(r summary.Review, width int) string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Width(width).Render(fmt.Sprintf("%d. %s", r.Number, r.Text)))
	b.WriteString("\n")
	b.WriteString(theme.Incorrect.Render("  Your answer: " + r.UserAnswer))
	b.WriteString("\n")
	b.WriteString(theme.Correct.Render("  Correct:     " + r.CorrectAnswer))
	if r.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(width).Render(r.Explanation))
	}
	return b.String()
}
