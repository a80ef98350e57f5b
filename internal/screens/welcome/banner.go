package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linuxplus/internal/ui/theme"
)

const bannerArt = `
 ██╗     ██╗███╗   ██╗██╗   ██╗██╗  ██╗    ██╗
 ██║     ██║████╗  ██║██║   ██║╚██╗██╔╝    ██║
 ██║     ██║██╔██╗ ██║██║   ██║ ╚███╔╝  ████████╗
 ██║     ██║██║╚██╗██║██║   ██║ ██╔██╗  ╚══██╔══╝
 ███████╗██║██║ ╚████║╚██████╔╝██╔╝ ██╗    ██║
 ╚══════╝╚═╝╚═╝  ╚═══╝ ╚═════╝ ╚═╝  ╚═╝    ╚═╝`

const bannerCompact = "L I N U X +"

// RenderBanner returns the banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 52 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
