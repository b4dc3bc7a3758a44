package builder

import (
	"strings"
	"testing"

	"presentty/internal/markdown"
	"presentty/internal/presentation"
	"presentty/internal/theme"
)

func TestCodeLineNumberPadding(t *testing.T) {
	contents := strings.TrimLeft(strings.Repeat("\nline", 11), "\n") + "\n"
	code := markdown.Code{
		Contents:   contents,
		Language:   "text",
		Attributes: markdown.CodeAttributes{LineNumbers: true},
	}
	preparer := codePreparer{theme: &theme.Theme{}}
	lines := preparer.prepare(code)
	if len(lines) != 11 {
		t.Fatalf("expected 11 lines, got %d", len(lines))
	}
	for i, line := range lines {
		var expected string
		if i < 9 {
			expected = " " + string(rune('1'+i)) + " "
		} else if i == 9 {
			expected = "10 "
		} else {
			expected = "11 "
		}
		if line.prefix != expected {
			t.Fatalf("line %d: expected prefix %q, got %q", i, expected, line.prefix)
		}
	}
}

func TestCodeVerticalPadding(t *testing.T) {
	th := theme.Theme{}
	th.Code.Padding.Vertical = 1
	th.Code.Padding.Horizontal = 2
	preparer := codePreparer{theme: &th}
	lines := preparer.prepare(markdown.Code{Contents: "hi\n"})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].lineNumber != 0 || lines[2].lineNumber != 0 {
		t.Fatal("expected padding lines to carry no line number")
	}
	if lines[1].prefix != "  " || lines[1].suffix != "  " {
		t.Fatalf("expected horizontal padding, got %q / %q", lines[1].prefix, lines[1].suffix)
	}
}

func TestHighlightMutatorSteps(t *testing.T) {
	context := &highlightContext{groups: []markdown.HighlightGroup{
		markdown.HighlightGroup{}.Line(1),
		markdown.HighlightGroup{}.Line(2),
		markdown.AllLines(),
	}}
	mutator := &highlightMutator{context: context}

	if !mutator.Advance() || context.current != 1 {
		t.Fatalf("first advance: current=%d", context.current)
	}
	if !mutator.Advance() || context.current != 2 {
		t.Fatalf("second advance: current=%d", context.current)
	}
	if mutator.Advance() {
		t.Fatal("advance past the last group should fail")
	}
	if !mutator.Retreat() || context.current != 1 {
		t.Fatalf("retreat: current=%d", context.current)
	}
	mutator.Reset()
	if context.current != 0 {
		t.Fatalf("reset: current=%d", context.current)
	}
	if mutator.Retreat() {
		t.Fatal("retreat at the first group should fail")
	}
	mutator.JumpToEnd()
	if context.current != 2 {
		t.Fatalf("jump to end: current=%d", context.current)
	}
	current, total := mutator.Progress()
	if current != 2 || total != 3 {
		t.Fatalf("progress: %d/%d", current, total)
	}
}

func TestCodeWithHighlightGroupsProducesMutator(t *testing.T) {
	code := markdown.Code{
		Contents: "a\nb\nc\n",
		Language: "text",
		Attributes: markdown.CodeAttributes{HighlightGroups: []markdown.HighlightGroup{
			markdown.HighlightGroup{}.Line(1),
			markdown.AllLines(),
		}},
	}
	p := mustBuild(t, code)
	chunks := p.Slides()[0].Chunks()
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if mutators := chunks[0].Mutators(); len(mutators) != 1 {
		t.Fatalf("expected 1 mutator, got %d", len(mutators))
	}
}

func TestHighlightedLineFollowsCurrentGroup(t *testing.T) {
	context := &highlightContext{
		groups:      []markdown.HighlightGroup{markdown.HighlightGroup{}.Line(1), markdown.HighlightGroup{}.Line(2)},
		blockLength: 5,
	}
	line := &highlightedLine{highlighted: "HIGH", plain: "PLAIN", lineNumber: 2, width: 4, context: context}
	size := presentation.WindowSize{Rows: 24, Columns: 80}

	rendered := line.RenderOperations(size)[0].(presentation.RenderPreformattedLine)
	if rendered.Text != "PLAIN" {
		t.Fatalf("expected plain rendering, got %q", rendered.Text)
	}
	context.current = 1
	rendered = line.RenderOperations(size)[0].(presentation.RenderPreformattedLine)
	if rendered.Text != "HIGH" {
		t.Fatalf("expected highlighted rendering, got %q", rendered.Text)
	}
}
