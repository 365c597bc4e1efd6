package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	mcol "github.com/maax3v3/seamcarve/internal/color"
	"github.com/maax3v3/seamcarve/internal/energy"
	"github.com/maax3v3/seamcarve/internal/grid"
	"github.com/maax3v3/seamcarve/internal/seam"
)

// Config holds rendering configuration.
type Config struct {
	Highlight    color.RGBA // color of OverlayMark cells
	Frame        color.RGBA // color of the border rows and columns
	Background   color.RGBA // contact sheet background
	PanelSpacing int        // gap between contact sheet panels
	CaptionSize  int        // approximate caption height in pixels
}

// DefaultConfig returns sensible default rendering configuration.
func DefaultConfig() Config {
	return Config{
		Highlight:    color.RGBA{255, 0, 0, 255},
		Frame:        color.RGBA{0, 0, 0, 255},
		Background:   color.RGBA{255, 255, 255, 255},
		PanelSpacing: 12,
		CaptionSize:  14,
	}
}

// Grid renders the logical area of g as a grayscale image. Interior values are
// rescaled linearly so the largest value below the sentinel maps to 255;
// OverlayMark cells take the highlight color and the frame takes cfg.Frame.
func Grid(g *grid.Grid, cfg Config) *image.RGBA {
	w, h := g.Width, g.Height
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	max := float64(g.MaxBelow(energy.Sentinel))
	for r := 0; r < h; r++ {
		row := g.Row(r)
		for c := 0; c < w; c++ {
			if r == 0 || r == h-1 || c == 0 || c == w-1 {
				out.SetRGBA(c, r, cfg.Frame)
				continue
			}
			v := row[c]
			if v == seam.OverlayMark {
				out.SetRGBA(c, r, cfg.Highlight)
				continue
			}
			out.SetRGBA(c, r, gray(v, max))
		}
	}
	return out
}

func gray(v int, max float64) color.RGBA {
	if max <= 0 || v <= 0 {
		return color.RGBA{0, 0, 0, 255}
	}
	l := math.Round(float64(v) / max * 255)
	if l > 255 {
		l = 255
	}
	return color.RGBA{uint8(l), uint8(l), uint8(l), 255}
}

// Channels renders three channel grids as an opaque color image.
func Channels(ch mcol.Channels) *image.RGBA {
	w, h := ch[0].Width, ch[0].Height
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for r := 0; r < h; r++ {
		rr, gr, br := ch[0].Row(r), ch[1].Row(r), ch[2].Row(r)
		for c := 0; c < w; c++ {
			out.SetRGBA(c, r, color.RGBA{clamp8(rr[c]), clamp8(gr[c]), clamp8(br[c]), 255})
		}
	}
	return out
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Scale resizes img uniformly to w×h. It is the baseline that seam carving
// is compared against.
func Scale(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Sheet lays the panels out left to right on a single image, each with its
// "WxH" size drawn underneath.
func Sheet(panels []image.Image, font FontRenderer, cfg Config) *image.RGBA {
	if len(panels) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	_, captionH := font.MeasureString("0", cfg.CaptionSize)
	totalW := cfg.PanelSpacing
	maxH := 0
	for _, p := range panels {
		b := p.Bounds()
		totalW += b.Dx() + cfg.PanelSpacing
		if b.Dy() > maxH {
			maxH = b.Dy()
		}
	}
	totalH := cfg.PanelSpacing + maxH + cfg.PanelSpacing + captionH + cfg.PanelSpacing

	out := image.NewRGBA(image.Rect(0, 0, totalW, totalH))
	draw.Draw(out, out.Bounds(), image.NewUniform(cfg.Background), image.Point{}, draw.Src)

	textColor := color.Color(color.Black)
	if !mcol.FromStdColor(cfg.Background).IsLight() {
		textColor = color.White
	}

	x := cfg.PanelSpacing
	for _, p := range panels {
		b := p.Bounds()
		dr := image.Rect(x, cfg.PanelSpacing, x+b.Dx(), cfg.PanelSpacing+b.Dy())
		draw.Draw(out, dr, p, b.Min, draw.Over)

		caption := fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
		cy := cfg.PanelSpacing + maxH + cfg.PanelSpacing + captionH/2
		font.DrawString(out, caption, x+b.Dx()/2, cy, textColor, cfg.CaptionSize)
		x += b.Dx() + cfg.PanelSpacing
	}
	return out
}
