package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/maax3v3/seamcarve/internal/config"
)

// ErrHelp is returned when -h or -help is given.
var ErrHelp = flag.ErrHelp

// Config holds the parsed CLI arguments merged over the config file.
type Config struct {
	InPath  string
	OutPath string
	Width   int

	// Serve is the listen address in server mode, empty otherwise.
	Serve string

	Settings *config.Config
}

// Parse parses CLI arguments (without the program name) and returns a
// validated Config. Usage and flag errors are written to stderr.
func Parse(args []string, stderr io.Writer) (Config, error) {
	fs := flag.NewFlagSet("seamcarve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	inPath := fs.String("in", "", "Path to input image (required, supports PNG, JPEG, WEBP, BMP)")
	outPath := fs.String("out", "", "Path to carved output image (required, must be .png)")
	width := fs.Int("width", 0, "Target width in pixels (required)")
	configPath := fs.String("config", "", "Path to a YAML config file")
	serve := fs.String("serve", "", "Run the HTTP server on this address instead of resizing a file (e.g. :8080)")

	forward := fs.Bool("forward", false, "Use forward energy")
	highlight := fs.String("highlight", "", "Hex color of seams in the seam overlay (e.g. #f00)")
	energyPath := fs.String("energy", "", "Also write the energy map to this .png")
	costPath := fs.String("cost", "", "Also write the cumulative cost map to this .png")
	seamsPath := fs.String("seams", "", "Also write the seam overlay to this .png")
	sheetPath := fs.String("sheet", "", "Also write a contact sheet comparing the results to this .png")
	debug := fs.Bool("debug", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: seamcarve [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n  seamcarve -in=photo.jpg -out=narrow.png -width=480 -forward -seams=seams.png\n  seamcarve -serve=:8080\n")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	settings := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if settings, err = config.LoadConfig(*configPath); err != nil {
			return Config{}, err
		}
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["forward"] {
		settings.Carving.ForwardEnergy = *forward
	}
	if set["debug"] {
		settings.Log.Debug = *debug
	}
	overrides := []struct {
		name     string
		src, dst *string
	}{
		{"highlight", highlight, &settings.Carving.Highlight},
		{"energy", energyPath, &settings.Output.Energy},
		{"cost", costPath, &settings.Output.Cost},
		{"seams", seamsPath, &settings.Output.Seams},
		{"sheet", sheetPath, &settings.Output.Sheet},
		{"serve", serve, &settings.Server.Addr},
	}
	for _, o := range overrides {
		if set[o.name] {
			*o.dst = *o.src
		}
	}

	if err := settings.Validate(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		InPath:   *inPath,
		OutPath:  *outPath,
		Width:    *width,
		Serve:    *serve,
		Settings: settings,
	}
	if cfg.Serve != "" {
		return cfg, nil
	}
	if err := cfg.validateFileMode(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validateFileMode() error {
	if c.InPath == "" {
		return fmt.Errorf("--in is required")
	}
	if c.OutPath == "" {
		return fmt.Errorf("--out is required")
	}
	if c.Width <= 0 {
		return fmt.Errorf("--width must be > 0, got %d", c.Width)
	}
	outputs := []struct{ flag, path string }{
		{"out", c.OutPath},
		{"energy", c.Settings.Output.Energy},
		{"cost", c.Settings.Output.Cost},
		{"seams", c.Settings.Output.Seams},
		{"sheet", c.Settings.Output.Sheet},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if ext := strings.ToLower(filepath.Ext(o.path)); ext != ".png" {
			return fmt.Errorf("--%s must be a .png file, got %q", o.flag, ext)
		}
	}
	return nil
}

// IsHelp reports whether err came from a -h or -help flag.
func IsHelp(err error) bool {
	return errors.Is(err, ErrHelp)
}
