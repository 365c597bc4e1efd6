package pipeline

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/maax3v3/seamcarve/internal/carving"
	"github.com/maax3v3/seamcarve/internal/cli"
	"github.com/maax3v3/seamcarve/internal/config"
	"github.com/maax3v3/seamcarve/internal/renderer"
)

func createTestImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*29 + y*53 + x*y*7) % 256)
			img.SetRGBA(x, y, color.RGBA{v, v / 3, 255 - v, 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output file not found: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestPipelineEndToEnd(t *testing.T) {
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "input.png")
	createTestImage(t, inPath, 40, 30)

	settings := config.DefaultConfig()
	settings.Output.Energy = filepath.Join(tmpDir, "energy.png")
	settings.Output.Cost = filepath.Join(tmpDir, "cost.png")
	settings.Output.Seams = filepath.Join(tmpDir, "seams.png")
	settings.Output.Sheet = filepath.Join(tmpDir, "sheet.png")

	cfg := cli.Config{
		InPath:   inPath,
		OutPath:  filepath.Join(tmpDir, "output.png"),
		Width:    30,
		Settings: settings,
	}
	if err := Run(context.Background(), cfg, renderer.NewBitmapFont(), quietLogger()); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	tests := []struct {
		path string
		w, h int
	}{
		{cfg.OutPath, 30, 30},
		{settings.Output.Energy, 30, 30},
		{settings.Output.Cost, 30, 30},
		{settings.Output.Seams, 40, 30},
	}
	for _, tt := range tests {
		if w, h := decodeSize(t, tt.path); w != tt.w || h != tt.h {
			t.Errorf("%s: got %dx%d, want %dx%d", filepath.Base(tt.path), w, h, tt.w, tt.h)
		}
	}

	// four panels: 40 + 30 + 30 + 40 wide with 12px gaps
	if w, _ := decodeSize(t, settings.Output.Sheet); w != 40+30+30+40+5*12 {
		t.Errorf("sheet width: got %d", w)
	}
}

func TestPipelineGrowForward(t *testing.T) {
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "input.png")
	createTestImage(t, inPath, 20, 12)

	settings := config.DefaultConfig()
	settings.Carving.ForwardEnergy = true
	cfg := cli.Config{InPath: inPath, OutPath: filepath.Join(tmpDir, "wide.png"), Width: 27, Settings: settings}
	if err := Run(context.Background(), cfg, renderer.NewBitmapFont(), quietLogger()); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if w, h := decodeSize(t, cfg.OutPath); w != 27 || h != 12 {
		t.Errorf("got %dx%d, want 27x12", w, h)
	}
}

func TestPipelineErrors(t *testing.T) {
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "input.png")
	createTestImage(t, inPath, 10, 10)

	t.Run("degenerate width", func(t *testing.T) {
		cfg := cli.Config{InPath: inPath, OutPath: filepath.Join(tmpDir, "o.png"), Width: 1, Settings: config.DefaultConfig()}
		err := Run(context.Background(), cfg, renderer.NewBitmapFont(), quietLogger())
		if !errors.Is(err, carving.ErrDegenerateResize) {
			t.Errorf("got %v, want ErrDegenerateResize", err)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		cfg := cli.Config{InPath: filepath.Join(tmpDir, "nope.png"), OutPath: filepath.Join(tmpDir, "o.png"), Width: 5, Settings: config.DefaultConfig()}
		if err := Run(context.Background(), cfg, renderer.NewBitmapFont(), quietLogger()); err == nil {
			t.Error("expected error for missing input")
		}
	})

	t.Run("unwritable output", func(t *testing.T) {
		cfg := cli.Config{InPath: inPath, OutPath: "/nonexistent/dir/o.png", Width: 5, Settings: config.DefaultConfig()}
		if err := Run(context.Background(), cfg, renderer.NewBitmapFont(), quietLogger()); err == nil {
			t.Error("expected error for unwritable output")
		}
	})
}
