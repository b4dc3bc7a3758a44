// Package tui is the interactive session: a bubbletea model that owns the
// compiled presentation, navigates it, watches the source file for changes
// and drives on-demand code execution widgets.
package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"presentty/internal/builder"
	"presentty/internal/highlight"
	"presentty/internal/markdown"
	"presentty/internal/presentation"
	"presentty/internal/render"
	"presentty/internal/resource"
	"presentty/internal/theme"
)

// Mode selects between authoring and delivering a presentation.
type Mode int

const (
	// ModeDevelopment watches the source file and reloads on change.
	ModeDevelopment Mode = iota
	// ModePresentation leaves the file alone; only manual reloads apply.
	ModePresentation
)

const (
	watchInterval  = 500 * time.Millisecond
	widgetInterval = 200 * time.Millisecond
	baseCodeTheme  = "monokai"
)

type watchTickMsg time.Time

type widgetTickMsg time.Time

type loadedMsg struct {
	presentation *presentation.Presentation
	modTime      time.Time
}

type loadFailedMsg struct {
	err error
}

// Model is the presenter session state.
type Model struct {
	path         string
	mode         Mode
	defaultTheme theme.Theme
	resources    *resource.Resources
	parser       *markdown.Parser

	presentation *presentation.Presentation
	failure      string
	fatal        error
	size         presentation.WindowSize
	buffer       keyBuffer
	modTime      time.Time
	polling      bool
}

// NewModel prepares a session for one presentation file.
func NewModel(path string, defaultTheme theme.Theme, mode Mode) Model {
	return Model{
		path:         path,
		mode:         mode,
		defaultTheme: defaultTheme,
		resources:    resource.New(filepath.Dir(path)),
		parser:       markdown.NewParser(),
	}
}

func (m Model) Init() tea.Cmd {
	commands := []tea.Cmd{m.load}
	if m.mode == ModeDevelopment {
		commands = append(commands, watchTick())
	}
	return tea.Batch(commands...)
}

func watchTick() tea.Cmd {
	return tea.Tick(watchInterval, func(t time.Time) tea.Msg { return watchTickMsg(t) })
}

func widgetTick() tea.Cmd {
	return tea.Tick(widgetInterval, func(t time.Time) tea.Msg { return widgetTickMsg(t) })
}

// load parses and compiles the presentation file from scratch.
func (m Model) load() tea.Msg {
	built, modTime, err := m.build()
	if err != nil {
		return loadFailedMsg{err: err}
	}
	return loadedMsg{presentation: built, modTime: modTime}
}

func (m Model) build() (*presentation.Presentation, time.Time, error) {
	info, err := os.Stat(m.path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("reading %s: %w", m.path, err)
	}
	contents, err := os.ReadFile(m.path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("reading %s: %w", m.path, err)
	}
	elements, err := m.parser.Parse(string(contents))
	if err != nil {
		return nil, time.Time{}, err
	}
	highlighter, err := highlight.New(baseCodeTheme)
	if err != nil {
		return nil, time.Time{}, err
	}
	b := builder.New(highlighter, m.defaultTheme, m.resources, builder.DefaultOptions())
	built, err := b.Build(elements)
	if err != nil {
		return nil, time.Time{}, err
	}
	return built, info.ModTime(), nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = presentation.WindowSize{Rows: msg.Height, Columns: msg.Width}
		return m, nil

	case loadedMsg:
		m.presentation = msg.presentation
		m.modTime = msg.modTime
		m.failure = ""
		return m, nil

	case loadFailedMsg:
		// Nothing to fall back on: a presentation that never loaded ends
		// the session with the error.
		m.fatal = msg.err
		return m, tea.Quit

	case watchTickMsg:
		command := watchTick()
		info, err := os.Stat(m.path)
		if err != nil || m.presentation == nil || !info.ModTime().After(m.modTime) {
			return m, command
		}
		m.modTime = info.ModTime()
		m = m.reload(false)
		return m, command

	case widgetTickMsg:
		if m.presentation == nil || m.presentation.WidgetsRendered() {
			// One last frame renders the final output before polling stops.
			m.polling = false
			return m, nil
		}
		return m, widgetTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	command, number := m.buffer.applyKey(msg)
	if m.presentation == nil {
		if command == commandExit {
			return m, tea.Quit
		}
		return m, nil
	}
	switch command {
	case commandJumpNextSlide:
		m.presentation.JumpNextSlide()
	case commandJumpPreviousSlide:
		m.presentation.JumpPreviousSlide()
	case commandJumpFirstSlide:
		m.presentation.JumpFirstSlide()
	case commandJumpLastSlide:
		m.presentation.JumpLastSlide()
	case commandJumpSlide:
		m.presentation.JumpSlide(number - 1)
	case commandRenderWidgets:
		if m.presentation.RenderSlideWidgets() && !m.polling {
			m.polling = true
			return m, widgetTick()
		}
	case commandReload:
		m = m.reload(false)
	case commandHardReload:
		m = m.reload(true)
	case commandExit:
		return m, tea.Quit
	}
	return m, nil
}

// reload rebuilds the presentation and re-anchors the cursor at the first
// modified chunk so the author keeps looking at what they just edited; an
// unchanged document keeps the cursor where it was. Hard reloads also drop
// the resource caches first. Presentation mode never reloads.
func (m Model) reload(hard bool) Model {
	if m.mode == ModePresentation {
		return m
	}
	if hard {
		m.resources.Clear()
	}
	built, modTime, err := m.build()
	if err != nil {
		m.failure = err.Error()
		return m
	}
	m.modTime = modTime
	previous := m.presentation
	m.presentation = built
	m.failure = ""
	if previous != nil {
		if modification, found := presentation.FindFirstModification(previous, built); found {
			built.JumpSlide(modification.SlideIndex)
			built.JumpChunk(modification.ChunkIndex)
		} else {
			built.JumpSlide(previous.CurrentSlideIndex())
			built.JumpChunk(previous.CurrentChunk())
		}
	}
	return m
}

func (m Model) View() string {
	if m.size.Rows == 0 && m.size.Columns == 0 {
		return ""
	}
	if m.presentation == nil {
		return "loading...\n"
	}
	if m.failure != "" {
		frame, err := render.DrawError(m.presentation, m.failure, m.size)
		if err != nil {
			return m.drawFailure(err)
		}
		return frame
	}
	frame, err := render.DrawSlide(m.presentation, m.size)
	if err != nil {
		return m.drawFailure(err)
	}
	return frame
}

// Err reports the error that ended the session, if any.
func (m Model) Err() error {
	return m.fatal
}

func (m Model) drawFailure(err error) string {
	if errors.Is(err, render.ErrTerminalTooSmall) {
		return "terminal too small\n"
	}
	return fmt.Sprintf("error rendering slide: %v\n", err)
}
