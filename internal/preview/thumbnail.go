package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// Unavailable is shown for images the terminal cannot draw
const Unavailable = "(preview unavailable)"

// Render draws image bytes as rows of upper half-block cells: each cell's
// foreground is the upper pixel and its background the lower one, so a
// height of h rows shows 2h pixel rows.
func Render(data []byte, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Unavailable
	}

	thumb := resize.Thumbnail(uint(width), uint(height*2), img, resize.Lanczos3)
	bounds := thumb.Bounds()

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			b.WriteByte('\n')
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex(thumb.At(x, y))))
			if y+1 < bounds.Max.Y {
				style = style.Background(lipgloss.Color(hex(thumb.At(x, y+1))))
			}
			b.WriteString(style.Render("▀"))
		}
	}

	return b.String()
}

// Dimensions decodes only the image header
func Dimensions(data []byte) (int, int, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", err
	}
	return cfg.Width, cfg.Height, format, nil
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}
