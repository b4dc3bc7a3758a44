package builder

import (
	"github.com/mattn/go-runewidth"

	"presentty/internal/execute"
	"presentty/internal/markdown"
	"presentty/internal/presentation"
	"presentty/internal/style"
)

// runCodeOperation renders the output of an executable code block. It stays
// invisible until the viewer triggers it, then shows the process output as
// it arrives.
type runCodeOperation struct {
	code          markdown.Code
	defaultColors style.Colors
	blockColors   style.Colors
	inner         *runCodeState
}

type runCodeState struct {
	handle      *execute.Handle
	outputLines []string
	state       presentation.OnDemandState
}

func newRunCodeOperation(code markdown.Code, defaultColors, blockColors style.Colors) *runCodeOperation {
	return &runCodeOperation{
		code:          code,
		defaultColors: defaultColors,
		blockColors:   blockColors,
		inner:         &runCodeState{state: presentation.NotStarted},
	}
}

func (o *runCodeOperation) RenderOperations(size presentation.WindowSize) []presentation.RenderOperation {
	if o.inner.state == presentation.NotStarted {
		return nil
	}
	heading := " [running] "
	if o.inner.state == presentation.Rendered {
		heading = " [done] "
	}
	operations := []presentation.RenderOperation{
		presentation.RenderLineBreak{},
		presentation.RenderDynamic{Source: &renderSeparator{heading: heading}},
		presentation.RenderLineBreak{},
		presentation.RenderLineBreak{},
		presentation.SetColors{Colors: o.blockColors},
	}
	for _, line := range o.inner.outputLines {
		for _, chunk := range chunkByWidth(line, size.Columns) {
			operations = append(operations,
				presentation.RenderPreformattedLine{
					Text:              chunk,
					UnformattedLength: runewidth.StringWidth(chunk),
					BlockLength:       runewidth.StringWidth(chunk),
					Alignment:         style.LeftAlignment(0),
					BlockColors:       o.blockColors,
				},
				presentation.RenderLineBreak{},
			)
		}
	}
	operations = append(operations, presentation.SetColors{Colors: o.defaultColors})
	return operations
}

func (o *runCodeOperation) DiffableContent() (string, bool) {
	return "", false
}

// Start launches the block's code. Spawn failures become the widget's sole
// output line so they are visible in place.
func (o *runCodeOperation) Start() bool {
	if o.inner.state != presentation.NotStarted {
		return false
	}
	handle, err := execute.Execute(o.code)
	if err != nil {
		o.inner.outputLines = []string{err.Error()}
		o.inner.state = presentation.Rendered
		return true
	}
	o.inner.handle = handle
	o.inner.state = presentation.Rendering
	return true
}

func (o *runCodeOperation) Poll() presentation.OnDemandState {
	if o.inner.handle != nil {
		state := o.inner.handle.State()
		o.inner.outputLines = state.Output
		if state.Status.Finished() {
			o.inner.handle = nil
			o.inner.state = presentation.Rendered
			if state.Status == execute.Failure {
				o.inner.outputLines = append(o.inner.outputLines, "[finished with error]")
			}
		}
	}
	return o.inner.state
}

// chunkByWidth splits a line into display-width sized pieces so long output
// never wraps at the terminal's mercy.
func chunkByWidth(line string, width int) []string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	var chunks []string
	var current []rune
	currentWidth := 0
	for _, r := range line {
		w := runewidth.RuneWidth(r)
		if currentWidth+w > width && len(current) > 0 {
			chunks = append(chunks, string(current))
			current = current[:0]
			currentWidth = 0
		}
		current = append(current, r)
		currentWidth += w
	}
	if len(current) > 0 {
		chunks = append(chunks, string(current))
	}
	return chunks
}
