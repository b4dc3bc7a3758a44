package markdown

import (
	"strings"
	"testing"
)

func parse(t *testing.T, contents string) []Element {
	t.Helper()
	elements, err := NewParser().Parse(contents)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return elements
}

func TestParseFrontMatter(t *testing.T) {
	elements := parse(t, "---\ntitle: hi\n---\n\n# heading\n")
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}
	front, ok := elements[0].(FrontMatter)
	if !ok {
		t.Fatalf("expected front matter first, got %T", elements[0])
	}
	if front.Contents != "title: hi" {
		t.Fatalf("unexpected front matter contents %q", front.Contents)
	}
}

func TestParseUnterminatedFrontMatter(t *testing.T) {
	if _, err := NewParser().Parse("---\ntitle: hi\n"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestParseHeadings(t *testing.T) {
	elements := parse(t, "# one\n\n## two\n\nslide title\n===========\n")
	if len(elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elements))
	}
	first := elements[0].(Heading)
	if first.Level != 1 || first.Text.String() != "one" {
		t.Fatalf("unexpected heading %v", first)
	}
	second := elements[1].(Heading)
	if second.Level != 2 {
		t.Fatalf("unexpected heading level %d", second.Level)
	}
	title, ok := elements[2].(SetexHeading)
	if !ok {
		t.Fatalf("expected setext heading, got %T", elements[2])
	}
	if title.Text.String() != "slide title" {
		t.Fatalf("unexpected title %q", title.Text.String())
	}
}

func TestParseParagraphStyles(t *testing.T) {
	elements := parse(t, "some **bold** and *italic* and `code` and ~~gone~~ text\n")
	paragraph := elements[0].(Paragraph)
	if len(paragraph.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(paragraph.Runs))
	}
	var bold, italic, code, struck bool
	for _, chunk := range paragraph.Runs[0].Chunks {
		switch chunk.Text {
		case "bold":
			bold = chunk.Style.Bold
		case "italic":
			italic = chunk.Style.Italic
		case "code":
			code = chunk.Style.Code
		case "gone":
			struck = chunk.Style.Strikethrough
		}
	}
	if !bold || !italic || !code || !struck {
		t.Fatalf("styles not applied: bold=%v italic=%v code=%v struck=%v", bold, italic, code, struck)
	}
}

func TestParseNestedList(t *testing.T) {
	contents := strings.Join([]string{
		"* one",
		"   * one_one",
		"   * one_two",
		"* two",
	}, "\n") + "\n"
	elements := parse(t, contents)
	list := elements[0].(List)
	if len(list.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(list.Items))
	}
	depths := []int{0, 1, 1, 0}
	texts := []string{"one", "one_one", "one_two", "two"}
	for i, item := range list.Items {
		if item.Depth != depths[i] || item.Contents.String() != texts[i] {
			t.Fatalf("item %d: depth=%d text=%q", i, item.Depth, item.Contents.String())
		}
	}
}

func TestParseOrderedListMarkers(t *testing.T) {
	period := parse(t, "1. one\n2. two\n")[0].(List)
	if period.Items[0].Type != OrderedPeriod {
		t.Fatalf("expected period marker, got %v", period.Items[0].Type)
	}
	parens := parse(t, "1) one\n2) two\n")[0].(List)
	if parens.Items[0].Type != OrderedParens {
		t.Fatalf("expected parens marker, got %v", parens.Items[0].Type)
	}
}

func TestParseCodeInfoString(t *testing.T) {
	cases := []struct {
		info        string
		language    string
		lineNumbers bool
		execute     bool
		groups      int
	}{
		{"rust", "rust", false, false, 1},
		{"go +line_numbers", "go", true, false, 1},
		{"bash +exec", "bash", false, true, 1},
		{"python {1-3|5|all}", "python", false, false, 3},
		{"", "", false, false, 1},
	}
	for _, tc := range cases {
		language, attributes := parseCodeInfo(tc.info)
		if language != tc.language {
			t.Fatalf("%q: expected language %q, got %q", tc.info, tc.language, language)
		}
		if attributes.LineNumbers != tc.lineNumbers || attributes.Execute != tc.execute {
			t.Fatalf("%q: unexpected attributes %+v", tc.info, attributes)
		}
		if len(attributes.HighlightGroups) != tc.groups {
			t.Fatalf("%q: expected %d groups, got %d", tc.info, tc.groups, len(attributes.HighlightGroups))
		}
	}
}

func TestParseHighlightGroupContains(t *testing.T) {
	_, attributes := parseCodeInfo("go {1-3,5|all}")
	groups := attributes.HighlightGroups
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	first := groups[0]
	for line, expected := range map[int]bool{1: true, 2: true, 3: true, 4: false, 5: true, 6: false} {
		if first.Contains(line) != expected {
			t.Fatalf("line %d: expected %v", line, expected)
		}
	}
	if !groups[1].Contains(42) {
		t.Fatal("all group should contain any line")
	}
}

func TestParseFencedCode(t *testing.T) {
	elements := parse(t, "```go +line_numbers\nfmt.Println(\"hi\")\n```\n")
	code := elements[0].(Code)
	if code.Language != "go" || !code.Attributes.LineNumbers {
		t.Fatalf("unexpected code %+v", code)
	}
	if code.Contents != "fmt.Println(\"hi\")\n" {
		t.Fatalf("unexpected contents %q", code.Contents)
	}
}

func TestParseTable(t *testing.T) {
	contents := strings.Join([]string{
		"| key | value |",
		"| --- | ----- |",
		"| a   | b     |",
		"| c   | d     |",
	}, "\n") + "\n"
	table := parse(t, contents)[0].(Table)
	if len(table.Header) != 2 || table.Header[0].String() != "key" {
		t.Fatalf("unexpected header %v", table.Header)
	}
	if len(table.Rows) != 2 || table.Rows[1][1].String() != "d" {
		t.Fatalf("unexpected rows %v", table.Rows)
	}
}

func TestParseCommentCarriesLine(t *testing.T) {
	contents := "---\ntitle: x\n---\n\n# hi\n\n<!-- pause -->\n"
	elements := parse(t, contents)
	var comment Comment
	found := false
	for _, element := range elements {
		if c, ok := element.(Comment); ok {
			comment = c
			found = true
		}
	}
	if !found {
		t.Fatal("expected a comment element")
	}
	if comment.Comment != "pause" {
		t.Fatalf("unexpected comment %q", comment.Comment)
	}
	if comment.Line != 7 {
		t.Fatalf("expected line 7, got %d", comment.Line)
	}
}

func TestParseStandaloneImage(t *testing.T) {
	elements := parse(t, "![alt text](picture.png)\n")
	image, ok := elements[0].(Image)
	if !ok {
		t.Fatalf("expected image, got %T", elements[0])
	}
	if image.Path != "picture.png" {
		t.Fatalf("unexpected path %q", image.Path)
	}
}

func TestParseBlockQuote(t *testing.T) {
	elements := parse(t, "> first line\n> second line\n")
	quote := elements[0].(BlockQuote)
	if len(quote.Lines) != 2 || quote.Lines[0] != "first line" || quote.Lines[1] != "second line" {
		t.Fatalf("unexpected quote lines %q", quote.Lines)
	}
}

func TestParseHardBreakSplitsRuns(t *testing.T) {
	elements := parse(t, "first\\\nsecond\n")
	paragraph := elements[0].(Paragraph)
	if len(paragraph.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %v", len(paragraph.Runs), paragraph.Runs)
	}
}
