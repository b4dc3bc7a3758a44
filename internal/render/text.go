// Package render draws a presentation's operations into a terminal frame
// string. It is the drawing backend behind the session controller's view.
package render

import (
	"github.com/charmbracelet/lipgloss"

	"presentty/internal/style"
)

// ApplyStyle renders a piece of text with a text style, falling back to
// the given default colors where the style leaves them unset.
func ApplyStyle(text string, st style.TextStyle, defaults style.Colors) string {
	s := lipgloss.NewStyle()
	if st.Bold {
		s = s.Bold(true)
	}
	if st.Italic {
		s = s.Italic(true)
	}
	if st.Strikethrough {
		s = s.Strikethrough(true)
	}
	foreground := st.Colors.Foreground
	if foreground == "" {
		foreground = defaults.Foreground
	}
	background := st.Colors.Background
	if background == "" && st.Code {
		background = defaults.Background
	}
	if foreground != "" {
		s = s.Foreground(lipgloss.Color(foreground))
	}
	if background != "" {
		s = s.Background(lipgloss.Color(background))
	}
	return s.Render(text)
}
