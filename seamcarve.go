// Package seamcarve resizes images by content-aware seam carving.
//
// Instead of scaling uniformly, the width is changed by repeatedly removing
// (or inserting) the connected top-to-bottom path of pixels that carries the
// least visual energy, so the salient parts of the picture keep their shape.
//
// Usage as a library:
//
//	img, _ := seamcarve.LoadImage("photo.jpg")
//	engine, _ := seamcarve.Load(img, seamcarve.DefaultOptions())
//	_ = engine.Resize(480, func(p float64) { fmt.Printf("%.0f%%\n", p) })
//	seamcarve.SavePNG("narrow.png", engine.ColorImage())
//
// Or use the file-based convenience:
//
//	err := seamcarve.ResizeFile("photo.jpg", "narrow.png", 480, seamcarve.DefaultOptions())
package seamcarve

import (
	"fmt"
	"image"
	stdcolor "image/color"

	"github.com/maax3v3/seamcarve/internal/carving"
	"github.com/maax3v3/seamcarve/internal/color"
	"github.com/maax3v3/seamcarve/internal/imaging"
	"github.com/maax3v3/seamcarve/internal/renderer"
	"github.com/maax3v3/seamcarve/internal/seam"
	"github.com/maax3v3/seamcarve/internal/stats"
)

type (
	// Engine carves one loaded image. See Load.
	Engine = carving.Engine

	// Options configures an Engine.
	Options = carving.Options

	// ProgressFunc receives the completion percentage of a running resize.
	ProgressFunc = carving.ProgressFunc

	// Seam is one carved path, as returned by Engine.Seams.
	Seam = seam.Seam

	// Report summarizes the last resize of an Engine.
	Report = stats.Report

	// FontRenderer draws the size captions of a contact sheet.
	FontRenderer = renderer.FontRenderer
)

var (
	ErrInvalidDimensions = carving.ErrInvalidDimensions
	ErrCapacityExceeded  = carving.ErrCapacityExceeded
	ErrDegenerateResize  = carving.ErrDegenerateResize
)

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return carving.DefaultOptions()
}

// Load prepares img for carving. Images smaller than 3×3 are rejected.
func Load(img image.Image, opts Options) (*Engine, error) {
	return carving.Load(img, opts)
}

// ParseHexColor parses a hex color string like "#000", "#FF00FF".
func ParseHexColor(hex string) (stdcolor.RGBA, error) {
	c, err := color.ParseHex(hex)
	if err != nil {
		return stdcolor.RGBA{}, err
	}
	return c.ToStdColor(), nil
}

// LoadImage reads an image from disk. Supports PNG, JPEG, WEBP and BMP.
func LoadImage(path string) (image.Image, error) {
	return imaging.Load(path)
}

// SavePNG writes an image to disk as PNG.
func SavePNG(path string, img image.Image) error {
	return imaging.SavePNG(path, img)
}

// Resize returns img carved to newWidth columns.
func Resize(img image.Image, newWidth int, opts Options) (*image.RGBA, error) {
	engine, err := Load(img, opts)
	if err != nil {
		return nil, err
	}
	if err := engine.Resize(newWidth, nil); err != nil {
		return nil, err
	}
	return engine.ColorImage(), nil
}

// ResizeFile is a convenience that loads an image from inPath, carves it to
// newWidth and saves the result as PNG to outPath.
func ResizeFile(inPath, outPath string, newWidth int, opts Options) error {
	img, err := LoadImage(inPath)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}

	result, err := Resize(img, newWidth, opts)
	if err != nil {
		return fmt.Errorf("resizing: %w", err)
	}

	if err := SavePNG(outPath, result); err != nil {
		return fmt.Errorf("saving output: %w", err)
	}
	return nil
}

// ContactSheet lays panels side by side with their sizes as captions.
// A nil font selects the built-in bitmap font.
func ContactSheet(panels []image.Image, font FontRenderer) *image.RGBA {
	if font == nil {
		font = renderer.NewBitmapFont()
	}
	return renderer.Sheet(panels, font, renderer.DefaultConfig())
}

// Baseline returns img scaled uniformly to w×h, for comparison with a
// carved result.
func Baseline(img image.Image, w, h int) *image.RGBA {
	return renderer.Scale(img, w, h)
}
