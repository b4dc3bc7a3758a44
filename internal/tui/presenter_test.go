package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"presentty/internal/theme"
)

const threeSlideDeck = `first

<!-- end_slide -->

second

<!-- end_slide -->

third
`

func writeDeck(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing deck: %v", err)
	}
}

func loadedModel(t *testing.T, path string, mode Mode) Model {
	t.Helper()
	m := NewModel(path, theme.Default(), mode)
	msg := m.load()
	loaded, ok := msg.(loadedMsg)
	if !ok {
		t.Fatalf("loading deck: %v", msg)
	}
	next, _ := m.Update(loaded)
	return next.(Model)
}

func TestReloadAnchorsCursorAtFirstChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")
	writeDeck(t, path, threeSlideDeck)
	m := loadedModel(t, path, ModeDevelopment)

	writeDeck(t, path, `first

<!-- end_slide -->

second changed

<!-- end_slide -->

third
`)
	m = m.reload(false)
	if m.failure != "" {
		t.Fatalf("reload failed: %s", m.failure)
	}
	if got := m.presentation.CurrentSlideIndex(); got != 1 {
		t.Fatalf("expected cursor on the changed slide 1, got %d", got)
	}
}

func TestReloadKeepsCursorWhenUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")
	writeDeck(t, path, threeSlideDeck)
	m := loadedModel(t, path, ModeDevelopment)
	m.presentation.JumpSlide(2)

	m = m.reload(false)
	if got := m.presentation.CurrentSlideIndex(); got != 2 {
		t.Fatalf("expected cursor to stay on slide 2, got %d", got)
	}
}

func TestHardReloadKeepsCursor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")
	writeDeck(t, path, threeSlideDeck)
	m := loadedModel(t, path, ModeDevelopment)
	m.presentation.JumpSlide(2)

	m = m.reload(true)
	if got := m.presentation.CurrentSlideIndex(); got != 2 {
		t.Fatalf("expected hard reload to keep the cursor on slide 2, got %d", got)
	}
}

func TestPresentationModeNeverReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")
	writeDeck(t, path, threeSlideDeck)
	m := loadedModel(t, path, ModePresentation)
	before := m.presentation

	writeDeck(t, path, "entirely different\n")
	for _, hard := range []bool{false, true} {
		m = m.reload(hard)
		if m.presentation != before {
			t.Fatalf("reload(hard=%v) replaced the presentation", hard)
		}
	}
}

func TestInitialLoadFailureEndsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.md")
	m := NewModel(path, theme.Default(), ModeDevelopment)
	msg := m.load()
	failed, ok := msg.(loadFailedMsg)
	if !ok {
		t.Fatalf("expected a load failure, got %T", msg)
	}
	next, cmd := m.Update(failed)
	if cmd == nil {
		t.Fatal("expected the session to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected a quit command")
	}
	if next.(Model).Err() == nil {
		t.Fatal("expected the load error to be reported")
	}
}
