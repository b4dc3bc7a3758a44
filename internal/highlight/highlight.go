// Package highlight wraps chroma into the two-pass per-line highlighter
// the builder needs: every code line is rendered once with the block's
// language and once with a plaintext lexer, so progressive reveal can flip
// between them without re-highlighting.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"presentty/internal/style"
)

// CodeHighlighter captures a chroma style and hands out per-language line
// highlighters.
type CodeHighlighter struct {
	style *chroma.Style
}

// New resolves a chroma style by name. Unknown names are an error rather
// than a silent fallback so a typo in a theme file surfaces at build time.
func New(themeName string) (CodeHighlighter, error) {
	if _, ok := styles.Registry[themeName]; !ok {
		return CodeHighlighter{}, fmt.Errorf("unknown code highlighting theme %q", themeName)
	}
	return CodeHighlighter{style: styles.Get(themeName)}, nil
}

// LanguageHighlighter returns a line highlighter for a language. Unknown
// languages fall back to plaintext, which is also how the "not
// highlighted" rendering of every line is produced.
func (h CodeHighlighter) LanguageHighlighter(language string) *LanguageHighlighter {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
		if lexer == nil {
			lexer = lexers.Match("file." + language)
		}
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &LanguageHighlighter{lexer: chroma.Coalesce(lexer), style: h.style}
}

// PaddingStyle is the style applied to the horizontal padding and line
// number prefix of code lines, taken from the style's comment token so it
// blends into the block.
func (h CodeHighlighter) PaddingStyle() style.TextStyle {
	entry := h.style.Get(chroma.Comment)
	colors := style.Colors{Background: h.backgroundColor()}
	if entry.Colour.IsSet() {
		colors.Foreground = entry.Colour.String()
	}
	return style.TextStyle{Colors: colors}
}

// BlockColors is the color pair a code block's rectangle is painted with.
func (h CodeHighlighter) BlockColors() style.Colors {
	return style.Colors{Background: h.backgroundColor()}
}

func (h CodeHighlighter) backgroundColor() string {
	entry := h.style.Get(chroma.Background)
	if entry.Background.IsSet() {
		return entry.Background.String()
	}
	return ""
}

// LanguageHighlighter highlights single lines of one language.
type LanguageHighlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// HighlightLine renders one line (without its trailing newline) to an
// ANSI-styled string.
func (l *LanguageHighlighter) HighlightLine(line string) string {
	iterator, err := l.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var sb strings.Builder
	if err := formatters.TTY16m.Format(&sb, l.style, iterator); err != nil {
		return line
	}
	return strings.TrimRight(sb.String(), "\n")
}
