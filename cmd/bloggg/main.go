package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/gh-sh4/bloggg/internal/config"
	"github.com/gh-sh4/bloggg/internal/logfields"
	"github.com/gh-sh4/bloggg/internal/metrics"
	"github.com/gh-sh4/bloggg/internal/render"
	"github.com/gh-sh4/bloggg/internal/site"
	"github.com/gh-sh4/bloggg/internal/version"
	"github.com/gh-sh4/bloggg/internal/watch"
)

// CLI holds the three documented flags. Tuning knobs (log level, metrics
// address, periodic rebuild interval) are environment variables; see
// internal/config.
var CLI struct {
	Input  string `short:"i" help:"Input directory" required:"" type:"existingdir"`
	Output string `short:"o" help:"Output directory, created if absent" required:""`
	Watch  bool   `short:"w" help:"Watch the input directory and reprocess on changes"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("bloggg"),
		kong.Description("bloggg - markdown site generator"),
	)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LogLevel(),
	})))

	if err := run(); err != nil {
		slog.Error("bloggg failed", logfields.Error(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(CLI.Input, CLI.Output, CLI.Watch)
	if err != nil {
		return err
	}

	slog.Info("Starting site generation",
		"version", version.Version,
		logfields.Path(cfg.InputDir),
		logfields.Output(cfg.OutputDir),
		"watch", cfg.Watch)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var rec metrics.Recorder = metrics.NoopRecorder{}
	reg := prom.NewRegistry()
	if cfg.Watch && cfg.MetricsAddr != "" {
		rec = metrics.NewPrometheusRecorder(reg)
		go metrics.Serve(ctx, cfg.MetricsAddr, reg)
	}

	builder := site.New(cfg, render.New(cfg, rec), rec)

	if err := builder.Build(ctx); err != nil {
		return err
	}
	slog.Info("Site generated", logfields.Output(cfg.OutputDir))

	if !cfg.Watch {
		return nil
	}
	return watch.New(cfg, builder).Run(ctx)
}
