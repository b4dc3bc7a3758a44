package theme

import (
	"os"
	"path/filepath"
	"testing"

	"presentty/internal/style"
)

func TestEmbeddedThemesLoad(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("expected embedded themes")
	}
	for _, name := range names {
		if _, ok := FromName(name); !ok {
			t.Fatalf("embedded theme %q failed to load", name)
		}
	}
}

func TestFromNameUnknown(t *testing.T) {
	if _, ok := FromName("does-not-exist"); ok {
		t.Fatal("expected lookup to fail")
	}
}

func TestDefaultThemeHasCodeTheme(t *testing.T) {
	theme := Default()
	if theme.Code.ThemeName == "" {
		t.Fatal("default theme should select a code highlighting theme")
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	contents := "default:\n  colors:\n    foreground: \"ff0000\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing theme: %v", err)
	}
	theme, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("loading theme: %v", err)
	}
	if theme.DefaultStyle.Colors.Foreground != "ff0000" {
		t.Fatalf("unexpected foreground %q", theme.DefaultStyle.Colors.Foreground)
	}
}

func TestLoadFromPathRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("no_such_field: 1\n"), 0o644); err != nil {
		t.Fatalf("writing theme: %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected an error for unknown fields")
	}
}

func TestMergeOverrides(t *testing.T) {
	base := Default()
	overrides := map[interface{}]interface{}{
		"footer": map[interface{}]interface{}{
			"style": "progress_bar",
		},
		"default": map[interface{}]interface{}{
			"colors": map[interface{}]interface{}{
				"foreground": "123456",
			},
		},
	}
	merged, err := Merge(base, overrides)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if merged.Footer.Style != FooterStyleProgressBar {
		t.Fatalf("expected overridden footer style, got %q", merged.Footer.Style)
	}
	if merged.DefaultStyle.Colors.Foreground != "123456" {
		t.Fatalf("expected overridden foreground, got %q", merged.DefaultStyle.Colors.Foreground)
	}
	if merged.DefaultStyle.Colors.Background != base.DefaultStyle.Colors.Background {
		t.Fatal("merge should keep base values that were not overridden")
	}
	if merged.Code.ThemeName != base.Code.ThemeName {
		t.Fatal("merge should keep unrelated base sections")
	}
}

func TestAlignmentPerElement(t *testing.T) {
	theme := Theme{}
	theme.Code.MinimumSize = 40
	if theme.Alignment(ElementParagraph).Kind != style.AlignLeft {
		t.Fatal("paragraphs should be left aligned")
	}
	code := theme.Alignment(ElementCode)
	if code.Kind != style.AlignCenter || code.MinimumSize != 40 {
		t.Fatalf("expected centered code with minimum size 40, got %+v", code)
	}
	if theme.Alignment(ElementPresentationTitle).Kind != style.AlignCenter {
		t.Fatal("intro title should be centered")
	}
}
