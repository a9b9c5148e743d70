package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/explain"
	"github.com/abhisek/quizzy/internal/practice"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/screens/history"
	"github.com/abhisek/quizzy/internal/screens/setup"
	"github.com/abhisek/quizzy/internal/screens/stats"
	"github.com/abhisek/quizzy/internal/screens/welcome"
	"github.com/abhisek/quizzy/internal/ui/components"
	"github.com/abhisek/quizzy/internal/ui/layout"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu      components.Menu
	questions int
	topics    int
	explains  bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. explainer may be nil.
func New(svc *practice.Service, explainer *explain.Explainer) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Start practice", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(svc, explainer)}
			}
		}},
		{Label: "Question stats", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(svc.Stats())}
			}
		}},
		{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(svc)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:      components.NewMenu(items),
		questions: svc.Catalog().Len(),
		topics:    len(svc.Topics()),
		explains:  explainer != nil,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		welcome.RenderBanner(cw, layout.IsCompactHeight(height+6))))

	info := fmt.Sprintf("%d questions across %d topics", h.questions, h.topics)
	if h.explains {
		info += "  ·  explanations on"
	}
	sections = append(sections, layout.Centered(theme.Subtitle, cw, info))
	sections = append(sections, components.Card(h.menu.View(), cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
