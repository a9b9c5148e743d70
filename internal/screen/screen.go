package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzy/internal/ui/layout"
)

// Screen is one page of the terminal UI. Screens are stacked by the router.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen body. The header and footer are drawn by the app.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens that want their own footer
// hints instead of the defaults.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that use Esc themselves. The app
// forwards Esc to them instead of popping the screen.
type EscapeHandler interface {
	HandlesEscape() bool
}
