// Package presentation models a compiled presentation: slides made of
// chunks made of render operations, the cursor that navigates them, and
// the differ that re-anchors the cursor across live reloads.
package presentation

import (
	"presentty/internal/markdown"
	"presentty/internal/resource"
	"presentty/internal/style"
)

// WindowSize is the terminal dimensions dynamic operations are evaluated
// against.
type WindowSize struct {
	Rows    int
	Columns int
}

// RenderOperation is one atomic display instruction. The implementation
// set is closed; the drawer dispatches over it.
type RenderOperation interface {
	renderOperation()
}

// MarginProperties is the margin applied around a slide's content.
type MarginProperties struct {
	Horizontal        style.Margin
	BottomSlideMargin int
}

// SetColors switches the default foreground/background.
type SetColors struct {
	Colors style.Colors
}

// ClearScreen wipes the drawing surface.
type ClearScreen struct{}

// ApplyMargin pushes a margin onto the drawing rect.
type ApplyMargin struct {
	Properties MarginProperties
}

// PopMargin restores the full terminal rect.
type PopMargin struct{}

// JumpToVerticalCenter moves the cursor to the vertical middle.
type JumpToVerticalCenter struct{}

// JumpToBottomRow moves the cursor to the Index-th row from the bottom.
type JumpToBottomRow struct {
	Index int
}

// RenderText draws a styled line of text with an alignment.
type RenderText struct {
	Line      markdown.Text
	Alignment style.Alignment
}

// RenderLineBreak advances to the next row.
type RenderLineBreak struct{}

// RenderImage draws a decoded image scaled into the current rect.
type RenderImage struct {
	Image *resource.Image
}

// RenderPreformattedLine draws an already-styled line padded to a block
// width, so code blocks and quotes form solid rectangles.
type RenderPreformattedLine struct {
	Text              string
	UnformattedLength int
	BlockLength       int
	Alignment         style.Alignment
	BlockColors       style.Colors
}

// InitColumnLayout declares a column layout with the given weights.
type InitColumnLayout struct {
	Columns []int
}

// EnterColumn switches drawing into one column of the active layout.
type EnterColumn struct {
	Column int
}

// ExitLayout returns to whole-width drawing.
type ExitLayout struct{}

// RenderDynamic is recomputed against the terminal size on every frame.
type RenderDynamic struct {
	Source DynamicOperation
}

// RenderOnDemand is a dynamic operation backed by an asynchronous process,
// started explicitly and polled once per frame.
type RenderOnDemand struct {
	Source OnDemandOperation
}

func (SetColors) renderOperation()              {}
func (ClearScreen) renderOperation()            {}
func (ApplyMargin) renderOperation()            {}
func (PopMargin) renderOperation()              {}
func (JumpToVerticalCenter) renderOperation()   {}
func (JumpToBottomRow) renderOperation()        {}
func (RenderText) renderOperation()             {}
func (RenderLineBreak) renderOperation()        {}
func (RenderImage) renderOperation()            {}
func (RenderPreformattedLine) renderOperation() {}
func (InitColumnLayout) renderOperation()       {}
func (EnterColumn) renderOperation()            {}
func (ExitLayout) renderOperation()             {}
func (RenderDynamic) renderOperation()          {}
func (RenderOnDemand) renderOperation()         {}

// DynamicOperation produces a fresh operation list for the current
// terminal size. Its output is never cached.
type DynamicOperation interface {
	RenderOperations(dimensions WindowSize) []RenderOperation
	// DiffableContent exposes a stable string for the differ, or false if
	// this operation should never count as a modification.
	DiffableContent() (string, bool)
}

// OnDemandState is the lifecycle of an on-demand operation.
type OnDemandState int

const (
	NotStarted OnDemandState = iota
	Rendering
	Rendered
)

// OnDemandOperation is a dynamic operation tied to a background process.
type OnDemandOperation interface {
	DynamicOperation

	// Start kicks the process off; it is a no-op unless NotStarted.
	Start() bool
	// Poll refreshes captured output and returns the current state. Safe
	// to call every frame.
	Poll() OnDemandState
}

// ChunkMutator advances the shared reveal state of a chunk, typically a
// code block's highlight step.
type ChunkMutator interface {
	Advance() bool
	Retreat() bool
	Reset()
	JumpToEnd()
	Progress() (current, total int)
}
