package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// command is a viewer intention derived from key presses.
type command int

const (
	commandNone command = iota
	commandJumpNextSlide
	commandJumpPreviousSlide
	commandJumpFirstSlide
	commandJumpLastSlide
	commandJumpSlide
	commandRenderWidgets
	commandReload
	commandHardReload
	commandExit
)

type keyMap struct {
	Next          key.Binding
	Previous      key.Binding
	First         key.Binding
	Last          key.Binding
	RenderWidgets key.Binding
	Reload        key.Binding
	HardReload    key.Binding
	Quit          key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("right", "l", "j", " ", "enter", "pgdown"),
		key.WithHelp("→/l/space", "next"),
	),
	Previous: key.NewBinding(
		key.WithKeys("left", "h", "k", "pgup"),
		key.WithHelp("←/h", "previous"),
	),
	First: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "first slide"),
	),
	Last: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "last slide"),
	),
	RenderWidgets: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "run code blocks"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload"),
	),
	HardReload: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reload from scratch"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// keyBuffer accumulates a numeric prefix so `12G` can jump straight to a
// slide.
type keyBuffer struct {
	digits string
}

func (b *keyBuffer) push(digit string) {
	b.digits += digit
}

func (b *keyBuffer) take() (int, bool) {
	digits := b.digits
	b.digits = ""
	number, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return number, true
}

func (b *keyBuffer) reset() {
	b.digits = ""
}

// applyKey translates a key press into a command, tracking the numeric
// prefix buffer. The second return value is the 1-based slide number for
// commandJumpSlide.
func (b *keyBuffer) applyKey(msg tea.KeyMsg) (command, int) {
	text := msg.String()
	if len(text) == 1 && text[0] >= '0' && text[0] <= '9' {
		b.push(text)
		return commandNone, 0
	}
	if key.Matches(msg, keys.Last) {
		if number, ok := b.take(); ok {
			return commandJumpSlide, number
		}
		return commandJumpLastSlide, 0
	}
	b.reset()
	switch {
	case key.Matches(msg, keys.Next):
		return commandJumpNextSlide, 0
	case key.Matches(msg, keys.Previous):
		return commandJumpPreviousSlide, 0
	case key.Matches(msg, keys.First):
		return commandJumpFirstSlide, 0
	case key.Matches(msg, keys.RenderWidgets):
		return commandRenderWidgets, 0
	case key.Matches(msg, keys.Reload):
		return commandReload, 0
	case key.Matches(msg, keys.HardReload):
		return commandHardReload, 0
	case key.Matches(msg, keys.Quit):
		return commandExit, 0
	default:
		return commandNone, 0
	}
}
