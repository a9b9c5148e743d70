package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/practice"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/summary"
	"github.com/abhisek/quizzy/internal/ui/layout"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []practice.Info
	Scores   map[string]*summary.Score // session ID → score
}

// HistoryScreen lists the sessions played since the program started.
type HistoryScreen struct {
	svc      *practice.Service
	sessions []practice.Info
	scores   map[string]*summary.Score
	selected int
	expanded map[int]bool
	loaded   bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(svc *practice.Service) *HistoryScreen {
	return &HistoryScreen{
		svc:      svc,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		sessions := svc.Sessions()
		scores := make(map[string]*summary.Score, len(sessions))
		for _, info := range sessions {
			if sc, err := svc.Summary(info.ID); err == nil {
				scores[info.ID] = sc
			}
		}
		return historyLoadedMsg{Sessions: sessions, Scores: scores}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.sessions = msg.Sessions
		s.scores = msg.Scores
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if !s.loaded {
		return layout.Centered(dim, width, "\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return layout.Centered(dim.Italic(true), width, "\n\n  No sessions yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, info := range s.sessions {
		sc := s.scores[info.ID]

		result := info.State
		if sc != nil {
			result = fmt.Sprintf("%d/%d  %.0f%%  %s", sc.Correct, sc.Total, sc.Accuracy, sc.Grade)
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-9s %-6s  %s",
			prefix, info.CreatedAt.Local().Format("15:04"), info.Topic, info.Difficulty, result)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] && sc != nil {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderDetail(info, sc)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderDetail(info practice.Info, sc *summary.Score) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	lines := []string{
		dim.Render(fmt.Sprintf("    %s · %d of %d questions · %s", info.State, sc.Total, sc.Target, sc.Elapsed)),
	}
	for _, r := range summary.FilterReviews(sc.Reviews, summary.ReviewsIncorrect) {
		lines = append(lines, theme.Incorrect.Render(fmt.Sprintf("    ✗ %s  (%s)", r.Text, r.CorrectAnswer)))
	}
	return strings.Join(lines, "\n")
}
