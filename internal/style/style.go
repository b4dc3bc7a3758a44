// Package style holds the value types shared by the element model, themes
// and render operations: colors, text styles, alignment and margins.
package style

// Colors is a foreground/background pair. Empty strings mean "terminal
// default". Values are whatever lipgloss accepts: hex strings or ANSI
// palette indexes.
type Colors struct {
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// TextStyle is the styling applied to a single run of text.
type TextStyle struct {
	Bold          bool
	Italic        bool
	Strikethrough bool
	Code          bool
	Colors        Colors
}

// Merge returns the receiver with any unset attributes taken from other.
func (s TextStyle) Merge(other TextStyle) TextStyle {
	s.Bold = s.Bold || other.Bold
	s.Italic = s.Italic || other.Italic
	s.Strikethrough = s.Strikethrough || other.Strikethrough
	s.Code = s.Code || other.Code
	if s.Colors.Foreground == "" {
		s.Colors.Foreground = other.Colors.Foreground
	}
	if s.Colors.Background == "" {
		s.Colors.Background = other.Colors.Background
	}
	return s
}
