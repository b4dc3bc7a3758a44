package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/muesli/termenv"

	"presentty/internal/resource"
)

// renderImage rasterizes an image into half-block cells: each terminal
// cell carries two vertical pixels via the upper-half-block glyph with
// distinct foreground and background colors.
func (f *frame) renderImage(img *resource.Image) {
	if img == nil || img.Source == nil {
		return
	}
	bounds := img.Source.Bounds()
	sourceWidth := bounds.Dx()
	sourceHeight := bounds.Dy()
	if sourceWidth == 0 || sourceHeight == 0 {
		return
	}

	// Fit into the current rect, leaving the bottom margin alone.
	maxColumns := f.area.width
	maxRows := max(1, f.size.Rows-f.cursor-f.bottomMargin-1)
	columns := min(maxColumns, sourceWidth)
	rows := (columns * sourceHeight) / (sourceWidth * 2)
	if rows > maxRows {
		rows = maxRows
		columns = max(1, rows*2*sourceWidth/sourceHeight)
	}
	if rows == 0 {
		rows = 1
	}

	profile := termenv.ColorProfile()
	start := f.area.start + (f.area.width-columns)/2
	for cell := 0; cell < rows; cell++ {
		var sb strings.Builder
		for column := 0; column < columns; column++ {
			top := samplePixel(img.Source, column, cell*2, columns, rows*2)
			bottom := samplePixel(img.Source, column, cell*2+1, columns, rows*2)
			sb.WriteString(termenv.String("▀").
				Foreground(profile.Color(top)).
				Background(profile.Color(bottom)).
				String())
		}
		f.writeAt(start, sb.String(), columns)
		f.lineBreak()
	}
}

// samplePixel maps a target-cell coordinate back into the source image
// (nearest neighbor) and returns its hex color.
func samplePixel(source image.Image, x, y, targetWidth, targetHeight int) string {
	bounds := source.Bounds()
	sourceX := bounds.Min.X + x*bounds.Dx()/targetWidth
	sourceY := bounds.Min.Y + y*bounds.Dy()/targetHeight
	r, g, b, _ := source.At(sourceX, sourceY).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
