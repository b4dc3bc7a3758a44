package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"presentty/internal/markdown"
	"presentty/internal/presentation"
	"presentty/internal/style"
	"presentty/internal/theme"
)

// codeLine is one displayable line of a code block: theme padding plus an
// optional line number prefix, the code itself, and trailing padding.
// lineNumber is 0 for pure padding lines.
type codeLine struct {
	prefix     string
	code       string
	suffix     string
	lineNumber int
}

func (l codeLine) width() int {
	return runewidth.StringWidth(l.prefix) + runewidth.StringWidth(l.code) + runewidth.StringWidth(l.suffix)
}

// codePreparer lays out a code block's lines according to the theme's
// padding and the block's line number attribute.
type codePreparer struct {
	theme *theme.Theme
}

func (p codePreparer) prepare(code markdown.Code) []codeLine {
	horizontal := strings.Repeat(" ", p.theme.Code.Padding.Horizontal)
	var lines []codeLine
	if p.theme.Code.Padding.Vertical > 0 {
		lines = append(lines, codeLine{prefix: horizontal, suffix: horizontal})
	}
	contents := strings.TrimSuffix(code.Contents, "\n")
	var sourceLines []string
	if contents != "" {
		sourceLines = strings.Split(contents, "\n")
	}
	numberWidth := len(strconv.Itoa(len(sourceLines)))
	for index, line := range sourceLines {
		prefix := horizontal
		if code.Attributes.LineNumbers {
			prefix += fmt.Sprintf("%*d ", numberWidth, index+1)
		}
		lines = append(lines, codeLine{
			prefix:     prefix,
			code:       line,
			suffix:     horizontal,
			lineNumber: index + 1,
		})
	}
	if p.theme.Code.Padding.Vertical > 0 {
		lines = append(lines, codeLine{prefix: horizontal, suffix: horizontal})
	}
	return lines
}

// highlightContext is the shared reveal state for one code block. Every
// line of the block points at it, and the block's mutator steps its current
// group index.
type highlightContext struct {
	groups      []markdown.HighlightGroup
	current     int
	blockLength int
	alignment   style.Alignment
	blockColors style.Colors
}

// highlightedLine renders one code line, picking its highlighted or dimmed
// form per frame depending on the currently revealed group.
type highlightedLine struct {
	highlighted string
	plain       string
	lineNumber  int
	width       int
	context     *highlightContext
}

func (l *highlightedLine) RenderOperations(size presentation.WindowSize) []presentation.RenderOperation {
	text := l.plain
	if l.lineNumber > 0 && l.context.groups[l.context.current].Contains(l.lineNumber) {
		text = l.highlighted
	} else if l.lineNumber == 0 {
		text = l.highlighted
	}
	return []presentation.RenderOperation{
		presentation.RenderPreformattedLine{
			Text:              text,
			UnformattedLength: l.width,
			BlockLength:       l.context.blockLength,
			Alignment:         l.context.alignment,
			BlockColors:       l.context.blockColors,
		},
		presentation.RenderLineBreak{},
	}
}

func (l *highlightedLine) DiffableContent() (string, bool) {
	return l.highlighted, true
}

// highlightMutator steps a code block through its highlight groups.
type highlightMutator struct {
	context *highlightContext
}

func (m *highlightMutator) Advance() bool {
	if m.context.current+1 >= len(m.context.groups) {
		return false
	}
	m.context.current++
	return true
}

func (m *highlightMutator) Retreat() bool {
	if m.context.current == 0 {
		return false
	}
	m.context.current--
	return true
}

func (m *highlightMutator) Reset() {
	m.context.current = 0
}

func (m *highlightMutator) JumpToEnd() {
	m.context.current = len(m.context.groups) - 1
}

func (m *highlightMutator) Progress() (int, int) {
	return m.context.current, len(m.context.groups)
}
