package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_FileMode(t *testing.T) {
	cfg, err := Parse([]string{
		"-in", "a.jpg", "-out", "b.png", "-width", "320",
		"-forward", "-seams", "s.png", "-highlight", "#0f0",
	}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InPath != "a.jpg" || cfg.OutPath != "b.png" || cfg.Width != 320 {
		t.Errorf("paths: got %+v", cfg)
	}
	if !cfg.Settings.Carving.ForwardEnergy {
		t.Error("-forward not applied")
	}
	if cfg.Settings.Output.Seams != "s.png" || cfg.Settings.Carving.Highlight != "#0f0" {
		t.Errorf("outputs: got %+v", cfg.Settings.Output)
	}
	if cfg.Serve != "" {
		t.Errorf("serve: got %q, want empty", cfg.Serve)
	}
}

func TestParse_ServeMode(t *testing.T) {
	cfg, err := Parse([]string{"-serve", ":9090"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Serve != ":9090" || cfg.Settings.Server.Addr != ":9090" {
		t.Errorf("serve: got %q / %q", cfg.Serve, cfg.Settings.Server.Addr)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing in", []string{"-out", "b.png", "-width", "10"}, "--in is required"},
		{"missing out", []string{"-in", "a.png", "-width", "10"}, "--out is required"},
		{"missing width", []string{"-in", "a.png", "-out", "b.png"}, "--width"},
		{"negative width", []string{"-in", "a.png", "-out", "b.png", "-width", "-4"}, "--width"},
		{"out not png", []string{"-in", "a.png", "-out", "b.jpg", "-width", "10"}, "--out must be a .png"},
		{"sheet not png", []string{"-in", "a.png", "-out", "b.png", "-width", "10", "-sheet", "s.gif"}, "--sheet must be a .png"},
		{"bad highlight", []string{"-in", "a.png", "-out", "b.png", "-width", "10", "-highlight", "zz"}, "highlight"},
		{"unknown flag", []string{"-colors", "3"}, "flag provided but not defined"},
		{"positional", []string{"-in", "a.png", "extra"}, "unexpected arguments"},
		{"unreadable config", []string{"-config", "/"}, "reading config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args, io.Discard)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestParse_Help(t *testing.T) {
	var out strings.Builder
	_, err := Parse([]string{"-h"}, &out)
	if !IsHelp(err) {
		t.Fatalf("got %v, want ErrHelp", err)
	}
	if !strings.Contains(out.String(), "Usage: seamcarve") {
		t.Errorf("usage not printed: %q", out.String())
	}
}

func TestParse_FlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seamcarve.yaml")
	data := "carving:\n  forwardEnergy: true\n  capacityFactor: 3\noutput:\n  energy: e.png\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Parse([]string{"-config", path, "-in", "a.png", "-out", "b.png", "-width", "5", "-forward=false"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Settings.Carving.ForwardEnergy {
		t.Error("flag did not override the file")
	}
	if cfg.Settings.Carving.CapacityFactor != 3 || cfg.Settings.Output.Energy != "e.png" {
		t.Errorf("file values lost: %+v", cfg.Settings)
	}
}
