// Package resource loads and caches the external assets a presentation
// references: images and theme files. Paths resolve relative to the
// presentation file so decks are relocatable.
package resource

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"presentty/internal/theme"
)

// Image is a decoded image plus the path it came from.
type Image struct {
	Path   string
	Source image.Image
}

// Resources caches loaded assets for one presentation.
type Resources struct {
	basePath string
	images   map[string]*Image
	themes   map[string]theme.Theme
}

// New builds a resource loader rooted at the presentation's directory.
func New(basePath string) *Resources {
	return &Resources{
		basePath: basePath,
		images:   make(map[string]*Image),
		themes:   make(map[string]theme.Theme),
	}
}

// Image loads and decodes an image, caching by path.
func (r *Resources) Image(path string) (*Image, error) {
	if cached, ok := r.images[path]; ok {
		return cached, nil
	}
	file, err := os.Open(r.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("loading image %q: %w", path, err)
	}
	defer file.Close()

	decoded, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding image %q: %w", path, err)
	}
	loaded := &Image{Path: path, Source: decoded}
	r.images[path] = loaded
	return loaded, nil
}

// Theme loads a theme file, caching by path.
func (r *Resources) Theme(path string) (theme.Theme, error) {
	if cached, ok := r.themes[path]; ok {
		return cached, nil
	}
	loaded, err := theme.LoadFromPath(r.resolve(path))
	if err != nil {
		return theme.Theme{}, err
	}
	r.themes[path] = loaded
	return loaded, nil
}

// Clear drops all caches. Used by hard reloads to pick up changed assets.
func (r *Resources) Clear() {
	r.images = make(map[string]*Image)
	r.themes = make(map[string]theme.Theme)
}

func (r *Resources) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.basePath, path)
}
