package pipeline

import (
	"context"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/maax3v3/seamcarve/internal/carving"
	"github.com/maax3v3/seamcarve/internal/cli"
	"github.com/maax3v3/seamcarve/internal/imaging"
	"github.com/maax3v3/seamcarve/internal/renderer"
)

// Run loads cfg.InPath, carves it to cfg.Width and writes the carved image
// plus any extra outputs requested in cfg.Settings.Output.
func Run(ctx context.Context, cfg cli.Config, font renderer.FontRenderer, log logrus.FieldLogger) error {
	log = log.WithField("in", cfg.InPath)

	img, err := imaging.Load(cfg.InPath)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}
	log.WithField("size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy())).Info("Image loaded")

	settings := cfg.Settings
	engine, err := carving.Load(img, carving.Options{
		ForwardEnergy:  settings.Carving.ForwardEnergy,
		CapacityFactor: settings.Carving.CapacityFactor,
		Highlight:      settings.HighlightColor().ToStdColor(),
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("preparing image: %w", err)
	}

	next := 25.0
	progress := func(p float64) {
		for p >= next {
			log.WithField("percent", next).Info("Carving")
			next += 25
		}
	}
	if err := engine.ResizeContext(ctx, cfg.Width, progress); err != nil {
		return fmt.Errorf("resizing to width %d: %w", cfg.Width, err)
	}

	carved := engine.ColorImage()
	outputs := []struct {
		name, path string
		img        func() image.Image
	}{
		{"carved", cfg.OutPath, func() image.Image { return carved }},
		{"energy", settings.Output.Energy, func() image.Image { return engine.EnergyImage() }},
		{"cost", settings.Output.Cost, func() image.Image { return engine.CostImage() }},
		{"seams", settings.Output.Seams, func() image.Image { return engine.SeamImage() }},
		{"sheet", settings.Output.Sheet, func() image.Image { return contactSheet(img, engine, font) }},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := imaging.SavePNG(o.path, o.img()); err != nil {
			return fmt.Errorf("saving %s output: %w", o.name, err)
		}
		log.WithFields(logrus.Fields{"output": o.name, "path": o.path}).Info("Saved")
	}

	rep := engine.Report()
	log.WithFields(logrus.Fields{
		"size":        engine.FormattedSize(),
		"direction":   rep.Direction,
		"seams":       rep.Seams,
		"mean_cost":   rep.MeanCost,
		"stddev_cost": rep.StdDevCost,
		"mean_energy": rep.MeanEnergy,
		"took":        rep.Duration,
	}).Info("Done")
	return nil
}

// contactSheet compares the loaded image, the carved result, a uniform
// rescale to the same size and the seam overlay.
func contactSheet(src image.Image, engine *carving.Engine, font renderer.FontRenderer) image.Image {
	carved := engine.ColorImage()
	b := carved.Bounds()
	panels := []image.Image{
		imaging.ToRGBA(src),
		carved,
		renderer.Scale(src, b.Dx(), b.Dy()),
		engine.SeamImage(),
	}
	return renderer.Sheet(panels, font, renderer.DefaultConfig())
}
