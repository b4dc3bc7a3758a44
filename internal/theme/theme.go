// Package theme models presentation themes: colors, prefixes and layout
// knobs for every element type, loaded from embedded YAML files, from a
// path, or merged with front-matter overrides.
package theme

import (
	"embed"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v2"

	"presentty/internal/style"
)

//go:embed themes/*.yml
var embeddedThemes embed.FS

// Theme configures how every element renders.
type Theme struct {
	DefaultStyle    DefaultStyle    `yaml:"default"`
	SlideTitle      SlideTitle      `yaml:"slide_title"`
	Headings        Headings        `yaml:"headings"`
	IntroSlide      IntroSlide      `yaml:"intro_slide"`
	Footer          Footer          `yaml:"footer"`
	Code            CodeBlock       `yaml:"code"`
	InlineCode      InlineCode      `yaml:"inline_code"`
	BlockQuote      BlockQuote      `yaml:"block_quote"`
	ExecutionOutput ExecutionOutput `yaml:"execution_output"`
}

// DefaultStyle is the slide-wide base style.
type DefaultStyle struct {
	Colors style.Colors  `yaml:"colors"`
	Margin *style.Margin `yaml:"margin"`
}

// SlideTitle styles setext headings.
type SlideTitle struct {
	Colors        style.Colors `yaml:"colors"`
	PaddingTop    int          `yaml:"padding_top"`
	PaddingBottom int          `yaml:"padding_bottom"`
	Separator     bool         `yaml:"separator"`
}

// Heading styles one ATX heading level.
type Heading struct {
	Prefix string       `yaml:"prefix"`
	Colors style.Colors `yaml:"colors"`
}

// Headings collects the six levels.
type Headings struct {
	H1 Heading `yaml:"h1"`
	H2 Heading `yaml:"h2"`
	H3 Heading `yaml:"h3"`
	H4 Heading `yaml:"h4"`
	H5 Heading `yaml:"h5"`
	H6 Heading `yaml:"h6"`
}

// AuthorPositioning says where the intro slide puts the author line.
type AuthorPositioning string

const (
	AuthorBelowTitle AuthorPositioning = "below_title"
	AuthorPageBottom AuthorPositioning = "page_bottom"
)

// IntroSlide styles the synthesized first slide.
type IntroSlide struct {
	Title    ElementColors `yaml:"title"`
	Subtitle ElementColors `yaml:"subtitle"`
	Author   Author        `yaml:"author"`
}

// ElementColors is a bare color pair for one element.
type ElementColors struct {
	Colors style.Colors `yaml:"colors"`
}

// Author styles the intro slide's author line.
type Author struct {
	Colors      style.Colors      `yaml:"colors"`
	Positioning AuthorPositioning `yaml:"positioning"`
}

// Footer configures the per-slide footer. Style selects between a
// template (left/center/right with placeholders), a progress bar, or
// nothing.
type Footer struct {
	Style     string       `yaml:"style"`
	Left      string       `yaml:"left"`
	Center    string       `yaml:"center"`
	Right     string       `yaml:"right"`
	Character string       `yaml:"character"`
	Colors    style.Colors `yaml:"colors"`
}

const (
	FooterStyleTemplate    = "template"
	FooterStyleProgressBar = "progress_bar"
	FooterStyleEmpty       = "empty"
)

// CodeBlock styles fenced code blocks.
type CodeBlock struct {
	ThemeName     string  `yaml:"theme_name"`
	Padding       Padding `yaml:"padding"`
	MinimumSize   int     `yaml:"minimum_size"`
	MinimumMargin int     `yaml:"minimum_margin"`
}

// Padding is the whitespace inserted around code block contents.
type Padding struct {
	Horizontal int `yaml:"horizontal"`
	Vertical   int `yaml:"vertical"`
}

// InlineCode styles `inline code` runs.
type InlineCode struct {
	Colors style.Colors `yaml:"colors"`
}

// BlockQuote styles quote blocks.
type BlockQuote struct {
	Prefix string       `yaml:"prefix"`
	Colors style.Colors `yaml:"colors"`
}

// ExecutionOutput styles the output block of an executed code block.
type ExecutionOutput struct {
	Colors style.Colors `yaml:"colors"`
}

// ElementType identifies an element kind for alignment lookup.
type ElementType int

const (
	ElementSlideTitle ElementType = iota
	ElementHeading1
	ElementHeading2
	ElementHeading3
	ElementHeading4
	ElementHeading5
	ElementHeading6
	ElementParagraph
	ElementList
	ElementCode
	ElementPresentationTitle
	ElementPresentationSubTitle
	ElementPresentationAuthor
	ElementTable
	ElementBlockQuote
)

// Alignment resolves the alignment for an element type. The intro slide
// elements center; code blocks center as a block; everything else sits on
// the left edge.
func (t *Theme) Alignment(element ElementType) style.Alignment {
	switch element {
	case ElementPresentationTitle, ElementPresentationSubTitle, ElementPresentationAuthor, ElementSlideTitle:
		return style.CenterAlignment(0, 1)
	case ElementCode:
		return style.CenterAlignment(t.Code.MinimumSize, t.Code.MinimumMargin)
	default:
		return style.LeftAlignment(0)
	}
}

// HeadingStyle returns the style for a 1-based heading level.
func (t *Theme) HeadingStyle(level int) Heading {
	switch level {
	case 1:
		return t.Headings.H1
	case 2:
		return t.Headings.H2
	case 3:
		return t.Headings.H3
	case 4:
		return t.Headings.H4
	case 5:
		return t.Headings.H5
	default:
		return t.Headings.H6
	}
}

// FromName looks up an embedded theme.
func FromName(name string) (Theme, bool) {
	data, err := embeddedThemes.ReadFile(path.Join("themes", name+".yml"))
	if err != nil {
		return Theme{}, false
	}
	theme, err := parse(data)
	if err != nil {
		return Theme{}, false
	}
	return theme, true
}

// Names lists the embedded theme names.
func Names() []string {
	entries, err := embeddedThemes.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yml"))
	}
	return names
}

// Default returns the theme used when nothing else is selected.
func Default() Theme {
	theme, ok := FromName("dark")
	if !ok {
		// The embedded default must parse; failing that is a packaging bug.
		panic("embedded default theme missing")
	}
	return theme
}

// LoadFromPath reads a theme YAML file from disk.
func LoadFromPath(filePath string) (Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme: %w", err)
	}
	theme, err := parse(data)
	if err != nil {
		return Theme{}, fmt.Errorf("parsing theme %q: %w", filePath, err)
	}
	return theme, nil
}

func parse(data []byte) (Theme, error) {
	var theme Theme
	if err := yaml.UnmarshalStrict(data, &theme); err != nil {
		return Theme{}, err
	}
	return theme, nil
}

// Merge applies front-matter overrides on top of a base theme by
// round-tripping both through generic YAML maps so partial overrides keep
// the base's other fields.
func Merge(base Theme, overrides map[interface{}]interface{}) (Theme, error) {
	baseData, err := yaml.Marshal(base)
	if err != nil {
		return Theme{}, err
	}
	var baseMap map[interface{}]interface{}
	if err := yaml.Unmarshal(baseData, &baseMap); err != nil {
		return Theme{}, err
	}
	merged := mergeMaps(baseMap, overrides)
	mergedData, err := yaml.Marshal(merged)
	if err != nil {
		return Theme{}, err
	}
	var theme Theme
	if err := yaml.Unmarshal(mergedData, &theme); err != nil {
		return Theme{}, err
	}
	return theme, nil
}

func mergeMaps(base, overrides map[interface{}]interface{}) map[interface{}]interface{} {
	for key, value := range overrides {
		if overrideMap, ok := value.(map[interface{}]interface{}); ok {
			if baseMap, ok := base[key].(map[interface{}]interface{}); ok {
				base[key] = mergeMaps(baseMap, overrideMap)
				continue
			}
		}
		base[key] = value
	}
	return base
}
