package builder

// Metadata is the presentation's front matter.
type Metadata struct {
	Title    string        `yaml:"title"`
	SubTitle string        `yaml:"sub_title"`
	Author   string        `yaml:"author"`
	Theme    ThemeMetadata `yaml:"theme"`
}

// ThemeMetadata selects and tweaks the presentation theme. Name and Path
// are mutually exclusive; Overrides are deep-merged on top of whichever
// base is chosen.
type ThemeMetadata struct {
	Name      string                      `yaml:"name"`
	Path      string                      `yaml:"path"`
	Overrides map[interface{}]interface{} `yaml:"overrides"`
}

func (m Metadata) hasIntroContent() bool {
	return m.Title != "" || m.SubTitle != "" || m.Author != ""
}
