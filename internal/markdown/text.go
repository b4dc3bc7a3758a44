package markdown

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"presentty/internal/style"
)

// StyledText is a run of text with a single style.
type StyledText struct {
	Text  string
	Style style.TextStyle
}

// Text is a line of styled runs.
type Text struct {
	Chunks []StyledText
}

// Plain builds an unstyled Text from a string.
func Plain(s string) Text {
	return Text{Chunks: []StyledText{{Text: s}}}
}

// Styled builds a Text from a single styled run.
func Styled(s string, st style.TextStyle) Text {
	return Text{Chunks: []StyledText{{Text: s, Style: st}}}
}

// ApplyStyle merges st into every chunk's style.
func (t *Text) ApplyStyle(st style.TextStyle) {
	for i := range t.Chunks {
		t.Chunks[i].Style = t.Chunks[i].Style.Merge(st)
	}
}

// Width is the display width of the whole line.
func (t Text) Width() int {
	total := 0
	for _, chunk := range t.Chunks {
		total += runewidth.StringWidth(chunk.Text)
	}
	return total
}

// String flattens the line to its raw text.
func (t Text) String() string {
	var sb strings.Builder
	for _, chunk := range t.Chunks {
		sb.WriteString(chunk.Text)
	}
	return sb.String()
}

// Equal compares content and styles chunk by chunk.
func (t Text) Equal(other Text) bool {
	if len(t.Chunks) != len(other.Chunks) {
		return false
	}
	for i, chunk := range t.Chunks {
		if chunk != other.Chunks[i] {
			return false
		}
	}
	return true
}
