// Package markdown defines the content elements a presentation is built
// from and the parser that produces them from a markdown document.
package markdown

// Element is a block-level content element. The set of implementations is
// closed; the builder dispatches over it.
type Element interface {
	element()
}

// FrontMatter is the raw YAML between the leading `---` fences. Only legal
// as the very first element.
type FrontMatter struct {
	Contents string
}

// Heading is an ATX heading (`## title`), levels 1 through 6.
type Heading struct {
	Level int
	Text  Text
}

// SetexHeading is a setext heading (underlined with `===` or `---`). These
// render as slide titles rather than regular headings.
type SetexHeading struct {
	Text Text
}

// Paragraph is a sequence of text runs. Hard line breaks split runs; every
// run gets its own trailing line break when rendered.
type Paragraph struct {
	Runs []Text
}

// ListItemType distinguishes bullet lists from the two ordered markers.
type ListItemType int

const (
	Unordered ListItemType = iota
	OrderedPeriod
	OrderedParens
)

// ListItem is one item of a flattened list, carrying its nesting depth.
type ListItem struct {
	Depth    int
	Contents Text
	Type     ListItemType
}

// List is a flat ordered sequence of items; nesting is encoded in depths.
type List struct {
	Items []ListItem
}

// CodeAttributes are the flags parsed from a code fence's info string.
type CodeAttributes struct {
	LineNumbers     bool
	Execute         bool
	HighlightGroups []HighlightGroup
}

// Code is a fenced code block.
type Code struct {
	Contents   string
	Language   string
	Attributes CodeAttributes
}

// TableRow is one row of cells.
type TableRow []Text

// Table is a GFM table with one header row.
type Table struct {
	Header TableRow
	Rows   []TableRow
}

// Columns returns the widest row's cell count.
func (t Table) Columns() int {
	columns := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	return columns
}

// ColumnCells returns the cells of one column, header first. Rows shorter
// than the column index contribute nothing.
func (t Table) ColumnCells(column int) []Text {
	var cells []Text
	if column < len(t.Header) {
		cells = append(cells, t.Header[column])
	}
	for _, row := range t.Rows {
		if column < len(row) {
			cells = append(cells, row[column])
		}
	}
	return cells
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// Comment is an HTML comment, carrying its 1-based line in the source
// document so command parse errors can point at it.
type Comment struct {
	Comment string
	Line    int
}

// BlockQuote is a quote block flattened to its text lines.
type BlockQuote struct {
	Lines []string
}

// Image is a block-level image (a paragraph containing only an image).
type Image struct {
	Path string
}

func (FrontMatter) element()   {}
func (Heading) element()       {}
func (SetexHeading) element()  {}
func (Paragraph) element()     {}
func (List) element()          {}
func (Code) element()          {}
func (Table) element()         {}
func (ThematicBreak) element() {}
func (Comment) element()       {}
func (BlockQuote) element()    {}
func (Image) element()         {}
