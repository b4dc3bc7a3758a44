package markdown

import (
	"errors"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"presentty/internal/style"
)

// Parser turns a markdown document into the ordered element sequence the
// builder consumes.
type Parser struct {
	md goldmark.Markdown
}

// NewParser constructs a parser with the GFM pieces we need (tables and
// strikethrough).
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
			),
		),
	}
}

// Parse converts a document into content elements. Front matter, when
// present, becomes the first element; comment elements carry their 1-based
// line in the original document.
func (p *Parser) Parse(contents string) ([]Element, error) {
	var elements []Element

	frontMatter, body, bodyLineOffset, err := splitFrontMatter(contents)
	if err != nil {
		return nil, err
	}
	if frontMatter != "" {
		elements = append(elements, FrontMatter{Contents: frontMatter})
	}

	source := []byte(body)
	document := p.md.Parser().Parse(text.NewReader(source))
	for node := document.FirstChild(); node != nil; node = node.NextSibling() {
		converted, err := convertBlock(node, source, bodyLineOffset)
		if err != nil {
			return nil, err
		}
		elements = append(elements, converted...)
	}
	return elements, nil
}

// splitFrontMatter peels a leading `---` fenced YAML block off the
// document and reports how many source lines it consumed.
func splitFrontMatter(contents string) (frontMatter, body string, lineOffset int, err error) {
	const fence = "---"
	lines := strings.Split(contents, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != fence {
		return "", contents, 0, nil
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == fence {
			frontMatter = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return frontMatter, body, i + 1, nil
		}
	}
	return "", "", 0, errors.New("unterminated front matter block")
}

func convertBlock(node ast.Node, source []byte, lineOffset int) ([]Element, error) {
	switch n := node.(type) {
	case *ast.Heading:
		text := inlineText(n, source)
		if isSetextHeading(n, source) {
			return []Element{SetexHeading{Text: text}}, nil
		}
		return []Element{Heading{Level: n.Level, Text: text}}, nil
	case *ast.Paragraph:
		if image, ok := soleImage(n); ok {
			return []Element{Image{Path: string(image.Destination)}}, nil
		}
		return []Element{Paragraph{Runs: paragraphRuns(n, source)}}, nil
	case *ast.List:
		return []Element{List{Items: flattenList(n, 0, source)}}, nil
	case *ast.FencedCodeBlock:
		return []Element{convertCode(n, source)}, nil
	case *east.Table:
		return []Element{convertTable(n, source)}, nil
	case *ast.ThematicBreak:
		return []Element{ThematicBreak{}}, nil
	case *ast.HTMLBlock:
		return convertHTMLBlock(n, source, lineOffset), nil
	case *ast.Blockquote:
		return []Element{BlockQuote{Lines: blockQuoteLines(n, source)}}, nil
	default:
		return nil, nil
	}
}

// isSetextHeading checks the heading's first source line: ATX headings
// start with '#', setext headings don't.
func isSetextHeading(n *ast.Heading, source []byte) bool {
	if n.Lines().Len() == 0 {
		return false
	}
	segment := n.Lines().At(0)
	start := segment.Start
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	line := strings.TrimLeft(string(source[start:segment.Stop]), " \t")
	return !strings.HasPrefix(line, "#")
}

func soleImage(n *ast.Paragraph) (*ast.Image, bool) {
	child := n.FirstChild()
	if child == nil || child.NextSibling() != nil {
		return nil, false
	}
	image, ok := child.(*ast.Image)
	return image, ok
}

// runCollector accumulates styled chunks, starting a new run on every hard
// line break.
type runCollector struct {
	runs    []Text
	current []StyledText
}

func (c *runCollector) append(chunk StyledText) {
	if chunk.Text == "" {
		return
	}
	c.current = append(c.current, chunk)
}

func (c *runCollector) flush() {
	if len(c.current) == 0 {
		return
	}
	c.runs = append(c.runs, Text{Chunks: c.current})
	c.current = nil
}

func collectInlines(node ast.Node, source []byte, st style.TextStyle, c *runCollector) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			c.append(StyledText{Text: string(n.Segment.Value(source)), Style: st})
			if n.HardLineBreak() {
				c.flush()
			} else if n.SoftLineBreak() {
				c.append(StyledText{Text: " ", Style: st})
			}
		case *ast.String:
			c.append(StyledText{Text: string(n.Value), Style: st})
		case *ast.CodeSpan:
			code := st
			code.Code = true
			collectInlines(n, source, code, c)
		case *ast.Emphasis:
			emphasized := st
			if n.Level >= 2 {
				emphasized.Bold = true
			} else {
				emphasized.Italic = true
			}
			collectInlines(n, source, emphasized, c)
		case *east.Strikethrough:
			struck := st
			struck.Strikethrough = true
			collectInlines(n, source, struck, c)
		case *ast.Link:
			collectInlines(n, source, st, c)
		case *ast.AutoLink:
			c.append(StyledText{Text: string(n.URL(source)), Style: st})
		case *ast.Image:
			// Inline images keep their alt text; only standalone images
			// become image elements.
			collectInlines(n, source, st, c)
		default:
			collectInlines(n, source, st, c)
		}
	}
}

func paragraphRuns(node ast.Node, source []byte) []Text {
	var c runCollector
	collectInlines(node, source, style.TextStyle{}, &c)
	c.flush()
	return c.runs
}

func inlineText(node ast.Node, source []byte) Text {
	runs := paragraphRuns(node, source)
	if len(runs) == 0 {
		return Text{}
	}
	merged := runs[0]
	for _, run := range runs[1:] {
		merged.Chunks = append(merged.Chunks, run.Chunks...)
	}
	return merged
}

func flattenList(list *ast.List, depth int, source []byte) []ListItem {
	itemType := Unordered
	if list.IsOrdered() {
		if list.Marker == ')' {
			itemType = OrderedParens
		} else {
			itemType = OrderedPeriod
		}
	}

	var items []ListItem
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		appended := false
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch n := child.(type) {
			case *ast.List:
				items = append(items, flattenList(n, depth+1, source)...)
			default:
				if !appended {
					items = append(items, ListItem{
						Depth:    depth,
						Contents: inlineText(child, source),
						Type:     itemType,
					})
					appended = true
				}
			}
		}
	}
	return items
}

func convertCode(n *ast.FencedCodeBlock, source []byte) Code {
	var sb strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		segment := n.Lines().At(i)
		sb.Write(segment.Value(source))
	}
	info := ""
	if n.Info != nil {
		info = string(n.Info.Segment.Value(source))
	}
	language, attributes := parseCodeInfo(info)
	return Code{Contents: sb.String(), Language: language, Attributes: attributes}
}

// parseCodeInfo parses a fence info string of the shape
// `lang [+line_numbers] [+exec] [{1-3|5|all}]`.
func parseCodeInfo(info string) (string, CodeAttributes) {
	attributes := CodeAttributes{HighlightGroups: []HighlightGroup{AllLines()}}
	fields := strings.Fields(info)
	language := ""
	for i, field := range fields {
		switch {
		case i == 0 && !strings.HasPrefix(field, "+") && !strings.HasPrefix(field, "{"):
			language = field
		case field == "+line_numbers":
			attributes.LineNumbers = true
		case field == "+exec":
			attributes.Execute = true
		case strings.HasPrefix(field, "{") && strings.HasSuffix(field, "}"):
			if groups, ok := parseHighlightGroups(field[1 : len(field)-1]); ok {
				attributes.HighlightGroups = groups
			}
		}
	}
	return language, attributes
}

func parseHighlightGroups(spec string) ([]HighlightGroup, bool) {
	var groups []HighlightGroup
	for _, step := range strings.Split(spec, "|") {
		group := HighlightGroup{}
		for _, entry := range strings.Split(step, ",") {
			entry = strings.TrimSpace(entry)
			switch {
			case entry == "all" || entry == "":
				group = AllLines()
			case strings.Contains(entry, "-"):
				parts := strings.SplitN(entry, "-", 2)
				from, err1 := strconv.Atoi(parts[0])
				to, err2 := strconv.Atoi(parts[1])
				if err1 != nil || err2 != nil {
					return nil, false
				}
				group = group.LineRange(from, to)
			default:
				number, err := strconv.Atoi(entry)
				if err != nil {
					return nil, false
				}
				group = group.Line(number)
			}
		}
		groups = append(groups, group)
	}
	return groups, len(groups) > 0
}

func convertTable(n *east.Table, source []byte) Table {
	table := Table{}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		row := TableRow{}
		for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
			row = append(row, inlineText(cell, source))
		}
		switch child.(type) {
		case *east.TableHeader:
			table.Header = row
		case *east.TableRow:
			table.Rows = append(table.Rows, row)
		}
	}
	return table
}

func convertHTMLBlock(n *ast.HTMLBlock, source []byte, lineOffset int) []Element {
	var sb strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		segment := n.Lines().At(i)
		sb.Write(segment.Value(source))
	}
	if n.HasClosure() {
		sb.Write(n.ClosureLine.Value(source))
	}
	raw := strings.TrimSpace(sb.String())
	if !strings.HasPrefix(raw, "<!--") || !strings.HasSuffix(raw, "-->") {
		return nil
	}
	comment := strings.TrimSuffix(strings.TrimPrefix(raw, "<!--"), "-->")
	comment = strings.Trim(comment, " \t\r")

	line := 1
	if n.Lines().Len() > 0 {
		start := n.Lines().At(0).Start
		line = 1 + strings.Count(string(source[:start]), "\n")
	}
	return []Element{Comment{Comment: comment, Line: line + lineOffset}}
}

func blockQuoteLines(n *ast.Blockquote, source []byte) []string {
	var lines []string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			for i := 0; i < child.Lines().Len(); i++ {
				segment := child.Lines().At(i)
				line := string(segment.Value(source))
				lines = append(lines, strings.TrimRight(line, "\r\n"))
			}
		case *ast.Blockquote:
			lines = append(lines, blockQuoteLines(child.(*ast.Blockquote), source)...)
		}
	}
	return lines
}
