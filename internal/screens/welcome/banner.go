package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/ui/theme"
)

const bannerArt = ` ██████╗ ██╗   ██╗██╗███████╗███████╗██╗   ██╗
██╔═══██╗██║   ██║██║╚══███╔╝╚══███╔╝╚██╗ ██╔╝
██║   ██║██║   ██║██║  ███╔╝   ███╔╝  ╚████╔╝
██║▄▄ ██║██║   ██║██║ ███╔╝   ███╔╝    ╚██╔╝
╚██████╔╝╚██████╔╝██║███████╗███████╗   ██║
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚══════╝   ╚═╝`

const bannerCompact = "Q · U · I · Z · Z · Y"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 47

// RenderBanner returns the QUIZZY banner in the accent color, falling back
// to a single line when width is too narrow or compact is set.
func RenderBanner(width int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	if compact || width < bannerWidth+4 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
