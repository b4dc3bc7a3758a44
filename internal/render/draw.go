package render

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"

	"presentty/internal/markdown"
	"presentty/internal/presentation"
	"presentty/internal/style"
)

// ErrTerminalTooSmall is returned when the terminal cannot fit a slide at
// all. The session controller treats it as "wait for a resize", not as a
// failure.
var ErrTerminalTooSmall = errors.New("terminal too small")

const (
	minimumRows    = 8
	minimumColumns = 16
)

// DrawSlide renders the presentation's current slide (all chunks up to the
// cursor, plus the footer) into a frame string of exactly the window's
// rows.
func DrawSlide(p *presentation.Presentation, size presentation.WindowSize) (string, error) {
	if size.Rows < minimumRows || size.Columns < minimumColumns {
		return "", ErrTerminalTooSmall
	}
	f := newFrame(size)
	slide := p.CurrentSlide()
	for _, operation := range slide.VisibleOperations(p.CurrentChunk()) {
		f.apply(operation)
	}
	return f.String(), nil
}

// DrawError renders the current slide with an error banner across the
// top. Used when a reload fails: the last good slide stays visible.
func DrawError(p *presentation.Presentation, message string, size presentation.WindowSize) (string, error) {
	frame, err := DrawSlide(p, size)
	if err != nil {
		return "", err
	}
	rows := strings.Split(frame, "\n")
	banner := bannerLines(message, size.Columns)
	for i, line := range banner {
		if i < len(rows) {
			rows[i] = line
		}
	}
	return strings.Join(rows, "\n"), nil
}

func bannerLines(message string, columns int) []string {
	wrapped := wrapPlain("error: "+message, columns)
	errorStyle := style.TextStyle{Bold: true, Colors: style.Colors{Foreground: "#ffffff", Background: "#cc241d"}}
	lines := make([]string, 0, len(wrapped))
	for _, line := range wrapped {
		padded := line + strings.Repeat(" ", max(0, columns-runewidth.StringWidth(line)))
		lines = append(lines, ApplyStyle(padded, errorStyle, style.Colors{}))
	}
	return lines
}

type rect struct {
	start int
	width int
}

type row struct {
	content string
	width   int
}

type columnLayout struct {
	weights  []int
	area     rect
	startRow int
	maxRow   int
}

// frame accumulates styled rows while operations execute in order.
type frame struct {
	size   presentation.WindowSize
	rows   []row
	cursor int

	area          rect
	full          rect
	bottomMargin  int
	defaultColors style.Colors
	layout        *columnLayout
}

func newFrame(size presentation.WindowSize) *frame {
	full := rect{start: 0, width: size.Columns}
	return &frame{
		size: size,
		rows: make([]row, size.Rows),
		area: full,
		full: full,
	}
}

func (f *frame) String() string {
	lines := make([]string, len(f.rows))
	for i, r := range f.rows {
		lines[i] = r.content
	}
	return strings.Join(lines, "\n")
}

func (f *frame) apply(operation presentation.RenderOperation) {
	switch op := operation.(type) {
	case presentation.ClearScreen:
		f.rows = make([]row, f.size.Rows)
		f.cursor = 0
	case presentation.SetColors:
		f.defaultColors = op.Colors
	case presentation.ApplyMargin:
		margin := op.Properties.Horizontal.Columns(f.size.Columns)
		f.area = rect{start: margin, width: max(1, f.size.Columns-2*margin)}
		f.bottomMargin = op.Properties.BottomSlideMargin
	case presentation.PopMargin:
		f.area = f.full
		f.bottomMargin = 0
	case presentation.JumpToVerticalCenter:
		f.cursor = f.size.Rows / 2
	case presentation.JumpToBottomRow:
		f.cursor = max(0, f.size.Rows-1-op.Index)
	case presentation.RenderLineBreak:
		f.lineBreak()
	case presentation.RenderText:
		f.renderText(op.Line, op.Alignment)
	case presentation.RenderPreformattedLine:
		f.renderPreformatted(op)
	case presentation.RenderImage:
		f.renderImage(op.Image)
	case presentation.InitColumnLayout:
		f.layout = &columnLayout{weights: op.Columns, area: f.area, startRow: f.cursor, maxRow: f.cursor}
	case presentation.EnterColumn:
		f.enterColumn(op.Column)
	case presentation.ExitLayout:
		f.exitLayout()
	case presentation.RenderDynamic:
		for _, produced := range op.Source.RenderOperations(f.size) {
			f.apply(produced)
		}
	case presentation.RenderOnDemand:
		for _, produced := range op.Source.RenderOperations(f.size) {
			f.apply(produced)
		}
	}
}

func (f *frame) lineBreak() {
	f.cursor++
	if f.layout != nil && f.cursor > f.layout.maxRow {
		f.layout.maxRow = f.cursor
	}
}

func (f *frame) enterColumn(column int) {
	layout := f.layout
	if layout == nil || column >= len(layout.weights) {
		return
	}
	total := 0
	for _, weight := range layout.weights {
		total += weight
	}
	if total == 0 {
		return
	}
	start := layout.area.start
	for i := 0; i < column; i++ {
		start += layout.area.width * layout.weights[i] / total
	}
	width := layout.area.width * layout.weights[column] / total
	// One column of breathing room between adjacent columns.
	if column > 0 {
		start++
		width--
	}
	f.area = rect{start: start, width: max(1, width)}
	f.cursor = layout.startRow
}

func (f *frame) exitLayout() {
	if f.layout == nil {
		return
	}
	f.cursor = f.layout.maxRow
	f.area = f.layout.area
	f.layout = nil
}

// renderText wraps the line into the current rect and writes each visual
// line with its alignment.
func (f *frame) renderText(line markdown.Text, alignment style.Alignment) {
	available := f.availableWidth(alignment)
	if available <= 0 {
		return
	}
	for i, visual := range wrapChunks(line.Chunks, available) {
		if i > 0 {
			f.lineBreak()
		}
		width := 0
		var sb strings.Builder
		for _, chunk := range visual {
			width += runewidth.StringWidth(chunk.Text)
			sb.WriteString(ApplyStyle(chunk.Text, chunk.Style, f.defaultColors))
		}
		f.writeAt(f.alignedStart(alignment, width), sb.String(), width)
	}
}

func (f *frame) renderPreformatted(op presentation.RenderPreformattedLine) {
	start := f.alignedStart(op.Alignment, op.BlockLength)
	padding := op.BlockLength - op.UnformattedLength
	text := op.Text
	if padding > 0 {
		pad := strings.Repeat(" ", padding)
		text += ApplyStyle(pad, style.TextStyle{Colors: op.BlockColors}, f.defaultColors)
	}
	f.writeAt(start, text, op.BlockLength)
}

func (f *frame) availableWidth(alignment style.Alignment) int {
	margin := alignment.Margin.Columns(f.area.width)
	switch alignment.Kind {
	case style.AlignCenter:
		return max(0, f.area.width-2*margin)
	default:
		return max(0, f.area.width-margin)
	}
}

func (f *frame) alignedStart(alignment style.Alignment, width int) int {
	blockWidth := max(width, alignment.MinimumSize)
	margin := alignment.Margin.Columns(f.area.width)
	switch alignment.Kind {
	case style.AlignCenter:
		offset := max(margin, (f.area.width-blockWidth)/2)
		return f.area.start + offset
	case style.AlignRight:
		return f.area.start + max(0, f.area.width-width-margin)
	default:
		return f.area.start + margin
	}
}

// writeAt appends styled text to the cursor row, space-padding up to the
// absolute start column. Rows below the bottom margin are dropped.
func (f *frame) writeAt(start int, styled string, width int) {
	if f.cursor < 0 || f.cursor >= len(f.rows) {
		return
	}
	r := &f.rows[f.cursor]
	if pad := start - r.width; pad > 0 {
		r.content += strings.Repeat(" ", pad)
		r.width += pad
	}
	r.content += styled
	r.width += width
	if f.layout != nil && f.cursor > f.layout.maxRow {
		f.layout.maxRow = f.cursor
	}
}

// wrapChunks splits styled chunks into visual lines no wider than the
// given width.
func wrapChunks(chunks []markdown.StyledText, width int) [][]markdown.StyledText {
	var lines [][]markdown.StyledText
	var current []markdown.StyledText
	lineWidth := 0
	for _, chunk := range chunks {
		remaining := chunk
		for runewidth.StringWidth(remaining.Text) > width-lineWidth {
			split := splitAtWidth(remaining.Text, width-lineWidth)
			if split == 0 {
				// Nothing fits on this line; break and retry on a new one.
				if len(current) == 0 {
					split = splitAtWidth(remaining.Text, width)
					if split == 0 {
						split = len(remaining.Text)
					}
				} else {
					lines = append(lines, current)
					current = nil
					lineWidth = 0
					continue
				}
			}
			head := markdown.StyledText{Text: remaining.Text[:split], Style: remaining.Style}
			current = append(current, head)
			lines = append(lines, current)
			current = nil
			lineWidth = 0
			remaining.Text = strings.TrimPrefix(remaining.Text[split:], " ")
		}
		if remaining.Text != "" {
			current = append(current, remaining)
			lineWidth += runewidth.StringWidth(remaining.Text)
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}

// splitAtWidth returns the byte offset that keeps the string's display
// width at or under the limit.
func splitAtWidth(s string, limit int) int {
	width := 0
	for i, r := range s {
		next := width + runewidth.RuneWidth(r)
		if next > limit {
			return i
		}
		width = next
	}
	return len(s)
}

func wrapPlain(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	for runewidth.StringWidth(s) > width {
		split := splitAtWidth(s, width)
		if split == 0 {
			break
		}
		lines = append(lines, s[:split])
		s = s[split:]
	}
	return append(lines, s)
}
