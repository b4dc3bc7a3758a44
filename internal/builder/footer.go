package builder

import (
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"presentty/internal/markdown"
	"presentty/internal/presentation"
	"presentty/internal/style"
	"presentty/internal/theme"
)

// footerContext carries the facts a footer needs that are only known after
// the whole document is built.
type footerContext struct {
	totalSlides int
	author      string
}

// footerGenerator renders a slide's footer lazily so templates can refer to
// the final slide count.
type footerGenerator struct {
	currentSlide int
	context      *footerContext
	style        theme.Footer
}

func (g *footerGenerator) RenderOperations(size presentation.WindowSize) []presentation.RenderOperation {
	switch g.style.Style {
	case theme.FooterStyleTemplate:
		return g.renderTemplate()
	case theme.FooterStyleProgressBar:
		return g.renderProgressBar(size)
	default:
		return nil
	}
}

func (g *footerGenerator) DiffableContent() (string, bool) {
	return "", false
}

func (g *footerGenerator) renderTemplate() []presentation.RenderOperation {
	operations := []presentation.RenderOperation{presentation.JumpToBottomRow{Index: 1}}
	sections := []struct {
		template  string
		alignment style.Alignment
	}{
		{g.style.Left, style.LeftAlignment(1)},
		{g.style.Center, style.CenterAlignment(0, 0)},
		{g.style.Right, style.RightAlignment(1)},
	}
	for _, section := range sections {
		if section.template == "" {
			continue
		}
		contents := g.expand(section.template)
		operations = append(operations, presentation.RenderText{
			Line:      markdown.Styled(contents, style.TextStyle{Colors: g.style.Colors}),
			Alignment: section.alignment,
		})
	}
	return operations
}

func (g *footerGenerator) expand(template string) string {
	replacer := strings.NewReplacer(
		"{current_slide}", strconv.Itoa(g.currentSlide+1),
		"{total_slides}", strconv.Itoa(g.context.totalSlides),
		"{author}", g.context.author,
	)
	return replacer.Replace(template)
}

func (g *footerGenerator) renderProgressBar(size presentation.WindowSize) []presentation.RenderOperation {
	character := g.style.Character
	if character == "" {
		character = "█"
	}
	characterWidth := runewidth.StringWidth(character)
	if characterWidth == 0 {
		return nil
	}
	totalColumns := size.Columns / characterWidth
	progress := float64(g.currentSlide+1) / float64(g.context.totalSlides)
	filled := int(math.Ceil(float64(totalColumns) * progress))
	bar := strings.Repeat(character, filled)
	return []presentation.RenderOperation{
		presentation.JumpToBottomRow{Index: 0},
		presentation.RenderText{
			Line:      markdown.Styled(bar, style.TextStyle{Colors: g.style.Colors}),
			Alignment: style.LeftAlignment(0),
		},
	}
}

// renderSeparator draws a horizontal rule sized to the current window,
// optionally carrying a short heading in its middle.
type renderSeparator struct {
	heading string
}

const separatorCharacter = "—"

func (s *renderSeparator) RenderOperations(size presentation.WindowSize) []presentation.RenderOperation {
	var contents string
	if s.heading == "" {
		contents = strings.Repeat(separatorCharacter, size.Columns)
	} else {
		headingWidth := runewidth.StringWidth(s.heading)
		dashes := (size.Columns - headingWidth) / 2
		if dashes < 0 {
			dashes = 0
		}
		side := strings.Repeat(separatorCharacter, dashes)
		contents = side + s.heading + side
	}
	return []presentation.RenderOperation{presentation.RenderText{
		Line:      markdown.Plain(contents),
		Alignment: style.LeftAlignment(0),
	}}
}

func (s *renderSeparator) DiffableContent() (string, bool) {
	return "", false
}
