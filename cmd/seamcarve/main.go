package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/maax3v3/seamcarve/internal/cli"
	"github.com/maax3v3/seamcarve/internal/logging"
	"github.com/maax3v3/seamcarve/internal/pipeline"
	"github.com/maax3v3/seamcarve/internal/renderer"
	"github.com/maax3v3/seamcarve/internal/server"
)

func main() {
	cfg, err := cli.Parse(os.Args[1:], os.Stderr)
	if cli.IsHelp(err) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := logging.New(cfg.Settings.Log.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Serve != "" {
		if err := server.New(cfg.Settings, logger).ListenAndServe(ctx); err != nil {
			logger.WithError(err).Error("Server stopped")
			os.Exit(1)
		}
		return
	}

	if err := pipeline.Run(ctx, cfg, renderer.NewBitmapFont(), logger); err != nil {
		logger.WithError(err).Error("Resize failed")
		os.Exit(1)
	}
}
