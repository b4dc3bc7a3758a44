package render

import (
	"errors"
	"strings"
	"testing"

	"presentty/internal/markdown"
	"presentty/internal/presentation"
	"presentty/internal/style"
)

func slideFrom(operations ...presentation.RenderOperation) *presentation.Presentation {
	chunk := presentation.NewSlideChunk(operations, nil)
	return presentation.New([]presentation.Slide{
		presentation.NewSlide([]presentation.SlideChunk{chunk}, nil),
	})
}

func text(s string) presentation.RenderOperation {
	return presentation.RenderText{Line: markdown.Plain(s), Alignment: style.LeftAlignment(0)}
}

func frameRows(t *testing.T, p *presentation.Presentation, size presentation.WindowSize) []string {
	t.Helper()
	frame, err := DrawSlide(p, size)
	if err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	return strings.Split(frame, "\n")
}

func TestDrawSlideFillsWindowRows(t *testing.T) {
	size := presentation.WindowSize{Rows: 10, Columns: 40}
	rows := frameRows(t, slideFrom(text("hello")), size)
	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(rows))
	}
	if rows[0] != "hello" {
		t.Fatalf("expected text on the first row, got %q", rows[0])
	}
}

func TestDrawSlideTooSmall(t *testing.T) {
	_, err := DrawSlide(slideFrom(text("x")), presentation.WindowSize{Rows: 2, Columns: 5})
	if !errors.Is(err, ErrTerminalTooSmall) {
		t.Fatalf("expected %v, got %v", ErrTerminalTooSmall, err)
	}
}

func TestLineBreakAdvancesRows(t *testing.T) {
	p := slideFrom(text("first"), presentation.RenderLineBreak{}, text("second"))
	rows := frameRows(t, p, presentation.WindowSize{Rows: 8, Columns: 40})
	if rows[0] != "first" || rows[1] != "second" {
		t.Fatalf("unexpected rows %q / %q", rows[0], rows[1])
	}
}

func TestTextOnOneRowConcatenates(t *testing.T) {
	p := slideFrom(text("ab"), text("cd"))
	rows := frameRows(t, p, presentation.WindowSize{Rows: 8, Columns: 40})
	if rows[0] != "abcd" {
		t.Fatalf("expected %q, got %q", "abcd", rows[0])
	}
}

func TestCenterAlignment(t *testing.T) {
	p := slideFrom(presentation.RenderText{
		Line:      markdown.Plain("abcd"),
		Alignment: style.CenterAlignment(0, 0),
	})
	rows := frameRows(t, p, presentation.WindowSize{Rows: 8, Columns: 20})
	if rows[0] != strings.Repeat(" ", 8)+"abcd" {
		t.Fatalf("expected centered text, got %q", rows[0])
	}
}

func TestJumpToBottomRow(t *testing.T) {
	p := slideFrom(presentation.JumpToBottomRow{Index: 1}, text("footer"))
	rows := frameRows(t, p, presentation.WindowSize{Rows: 8, Columns: 40})
	if rows[6] != "footer" {
		t.Fatalf("expected footer on the second-to-last row, got %q", rows[6])
	}
}

func TestJumpToVerticalCenter(t *testing.T) {
	p := slideFrom(presentation.JumpToVerticalCenter{}, text("middle"))
	rows := frameRows(t, p, presentation.WindowSize{Rows: 10, Columns: 40})
	if rows[5] != "middle" {
		t.Fatalf("expected text on the middle row, got %q", rows[5])
	}
}

func TestApplyMarginShiftsText(t *testing.T) {
	margin := style.FixedMargin(3)
	p := slideFrom(
		presentation.ApplyMargin{Properties: presentation.MarginProperties{Horizontal: margin}},
		text("hi"),
	)
	rows := frameRows(t, p, presentation.WindowSize{Rows: 8, Columns: 40})
	if rows[0] != "   hi" {
		t.Fatalf("expected margin before text, got %q", rows[0])
	}
}

func TestTextWrapsToRect(t *testing.T) {
	p := slideFrom(text("aaaa bbbb cccc"))
	rows := frameRows(t, p, presentation.WindowSize{Rows: 8, Columns: 16})
	// 14 columns of text fit, nothing wraps.
	if rows[0] != "aaaa bbbb cccc" {
		t.Fatalf("unexpected row %q", rows[0])
	}
	// A 5 column margin on a 16 column window leaves 6 columns of text.
	narrow := slideFrom(
		presentation.ApplyMargin{Properties: presentation.MarginProperties{Horizontal: style.FixedMargin(5)}},
		text("abcdef123"),
	)
	rows = frameRows(t, narrow, presentation.WindowSize{Rows: 8, Columns: 16})
	if rows[0] != "     abcdef" {
		t.Fatalf("expected wrapped first line, got %q", rows[0])
	}
	if rows[1] != "     123" {
		t.Fatalf("expected continuation on the next row, got %q", rows[1])
	}
}

func TestColumnLayoutSplitsRect(t *testing.T) {
	p := slideFrom(
		presentation.InitColumnLayout{Columns: []int{1, 1}},
		presentation.EnterColumn{Column: 0},
		text("left"),
		presentation.RenderLineBreak{},
		text("below"),
		presentation.RenderLineBreak{},
		presentation.EnterColumn{Column: 1},
		text("right"),
		presentation.RenderLineBreak{},
		presentation.ExitLayout{},
		text("after"),
	)
	rows := frameRows(t, p, presentation.WindowSize{Rows: 8, Columns: 40})
	if !strings.HasPrefix(rows[0], "left") {
		t.Fatalf("expected left column content first, got %q", rows[0])
	}
	if !strings.Contains(rows[0], "right") {
		t.Fatalf("expected right column on the same row, got %q", rows[0])
	}
	if index := strings.Index(rows[0], "right"); index < 20 {
		t.Fatalf("right column should start past the midpoint, got index %d", index)
	}
	// Exiting the layout resumes below the tallest column.
	if rows[2] != "after" {
		t.Fatalf("expected content below the layout, got %q", rows[2])
	}
}

func TestPreformattedLinePadsToBlock(t *testing.T) {
	p := slideFrom(presentation.RenderPreformattedLine{
		Text:              "xy",
		UnformattedLength: 2,
		BlockLength:       6,
		Alignment:         style.LeftAlignment(0),
	})
	rows := frameRows(t, p, presentation.WindowSize{Rows: 8, Columns: 40})
	if rows[0] != "xy    " {
		t.Fatalf("expected padded block, got %q", rows[0])
	}
}

func TestDrawErrorOverlaysBanner(t *testing.T) {
	frame, err := DrawError(slideFrom(text("content")), "boom", presentation.WindowSize{Rows: 8, Columns: 40})
	if err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if !strings.Contains(strings.Split(frame, "\n")[0], "boom") {
		t.Fatal("expected the error message on the first row")
	}
}
