package seamcarve

import (
	"errors"
	"image"
	stdcolor "image/color"
	"path/filepath"
	"testing"
)

func stripes(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / (w - 1))
			img.SetRGBA(x, y, stdcolor.RGBA{v, v, 255 - v, 255})
		}
	}
	return img
}

func TestResize(t *testing.T) {
	out, err := Resize(stripes(16, 9), 11, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if b := out.Bounds(); b.Dx() != 11 || b.Dy() != 9 {
		t.Errorf("got %dx%d, want 11x9", b.Dx(), b.Dy())
	}

	if _, err := Resize(stripes(16, 9), 40, DefaultOptions()); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("got %v, want ErrCapacityExceeded", err)
	}
	if _, err := Resize(stripes(2, 9), 1, DefaultOptions()); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("got %v, want ErrInvalidDimensions", err)
	}
}

func TestResizeFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	if err := SavePNG(in, stripes(12, 6)); err != nil {
		t.Fatal(err)
	}

	if err := ResizeFile(in, out, 15, DefaultOptions()); err != nil {
		t.Fatalf("ResizeFile: %v", err)
	}
	img, err := LoadImage(out)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 15 || b.Dy() != 6 {
		t.Errorf("got %dx%d, want 15x6", b.Dx(), b.Dy())
	}

	if err := ResizeFile(in, out, 0, DefaultOptions()); !errors.Is(err, ErrDegenerateResize) {
		t.Errorf("got %v, want ErrDegenerateResize", err)
	}
	if err := ResizeFile(filepath.Join(dir, "missing.png"), out, 5, DefaultOptions()); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#0f0")
	if err != nil {
		t.Fatal(err)
	}
	if c != (stdcolor.RGBA{0, 255, 0, 255}) {
		t.Errorf("got %v", c)
	}
	if _, err := ParseHexColor("#12"); err == nil {
		t.Error("expected error for short hex")
	}
}

func TestContactSheet(t *testing.T) {
	src := stripes(10, 5)
	sheet := ContactSheet([]image.Image{src, Baseline(src, 7, 5)}, nil)
	if sheet.Bounds().Dx() <= 17 {
		t.Errorf("sheet width %d too small for both panels", sheet.Bounds().Dx())
	}
}
