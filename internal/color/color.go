package color

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/maax3v3/seamcarve/internal/grid"
)

// RGBA represents a color with 8-bit RGBA components.
type RGBA struct {
	R, G, B, A uint8
}

// FromStdColor converts a standard library color to RGBA.
func FromStdColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}

// ToStdColor converts RGBA to a standard library color.
func (c RGBA) ToStdColor() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Luma returns the integer intensity 0.3·R + 0.59·G + 0.11·B, truncated.
func (c RGBA) Luma() int {
	return int(float64(c.R)*0.3 + float64(c.G)*0.59 + float64(c.B)*0.11)
}

// IsLight returns true if the color is perceptually light (luminance > 0.5).
func (c RGBA) IsLight() bool {
	rLin := srgbToLinear(float64(c.R) / 255.0)
	gLin := srgbToLinear(float64(c.G) / 255.0)
	bLin := srgbToLinear(float64(c.B) / 255.0)
	luminance := 0.2126*rLin + 0.7152*gLin + 0.0722*bLin
	return luminance > 0.5
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ParseHex parses a hex color string like "#000", "#000000", "FF00FF".
func ParseHex(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid hex color %q: must be 3 or 6 hex digits", strings.TrimPrefix(s, "#"))
	}
	r, g, b := c.RGB255()
	return RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Channels holds one grid per color channel.
type Channels [3]*grid.Grid

// Grayscale projects img into gray, one intensity per pixel. When ch is non-nil
// the R, G and B components are written into its grids as well.
// The grids must already be sized to the image bounds.
func Grayscale(img image.Image, gray *grid.Grid, ch *Channels) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		row := gray.Row(y)
		for x := 0; x < w; x++ {
			px := FromStdColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			row[x] = px.Luma()
			if ch != nil {
				ch[0].Set(y, x, int(px.R))
				ch[1].Set(y, x, int(px.G))
				ch[2].Set(y, x, int(px.B))
			}
		}
	}
}
