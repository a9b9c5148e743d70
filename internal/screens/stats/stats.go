package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/catalog"
	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/ui/layout"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

// StatsScreen shows question counts by topic and difficulty.
type StatsScreen struct {
	stats catalog.Stats
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen.
func New(stats catalog.Stats) *StatsScreen {
	return &StatsScreen{stats: stats}
}

func (s *StatsScreen) Init() tea.Cmd { return nil }

func (s *StatsScreen) Title() string { return "Question Stats" }

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+Matrix(s.stats))
}

// Matrix renders the topic by difficulty table, with totals.
func Matrix(st catalog.Stats) string {
	const col = 10
	cell := func(s string) string { return fmt.Sprintf("%*s", col, s) }
	head := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(head.Render(fmt.Sprintf("%-12s", "Topic")))
	for _, d := range question.AllDifficulties() {
		b.WriteString(head.Render(cell(string(d))))
	}
	b.WriteString(head.Render(cell("Total")))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", 12+col*4)))
	b.WriteString("\n")

	for _, t := range question.AllTopics() {
		name := lipgloss.NewStyle().Foreground(theme.TopicColor(string(t))).Render(fmt.Sprintf("%-12s", t))
		b.WriteString(name)
		for _, d := range question.AllDifficulties() {
			n := st.Counts[t][d]
			style := theme.Body
			if n == 0 {
				style = dim
			}
			b.WriteString(style.Render(cell(fmt.Sprint(n))))
		}
		b.WriteString(theme.Body.Bold(true).Render(cell(fmt.Sprint(st.TopicTotals[t]))))
		b.WriteString("\n")
	}

	b.WriteString(head.Render(fmt.Sprintf("%-12s", "Total")))
	for _, d := range question.AllDifficulties() {
		b.WriteString(theme.Body.Bold(true).Render(cell(fmt.Sprint(st.LevelTotals[d]))))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(cell(fmt.Sprint(st.Total))))
	return b.String()
}
