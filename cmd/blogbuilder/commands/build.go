package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/evjen/blogbuilder/internal/build"
	"github.com/evjen/blogbuilder/internal/config"
	"github.com/evjen/blogbuilder/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory for the generated site (overrides config)"`
	Incremental bool   `short:"i" help:"Reuse cached rendered fragments from previous builds"`
	BaseURL     string `name:"base-url" help:"Override site.base_url for this build"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.BaseURL != "" {
		cfg.Site.BaseURL = b.BaseURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	return RunBuild(context.Background(), cfg, b.Output, b.Incremental)
}

// RunBuild executes one full site build. outputDir may be empty, in which
// case the configured output directory is used.
func RunBuild(ctx context.Context, cfg *config.Config, outputDir string, incremental bool) error {
	// Friendly user-facing messages go to stdout; structured logs to stderr.
	fmt.Println("Starting blog build")

	builder, err := build.New(cfg, build.Options{
		OutputDir:   outputDir,
		Incremental: incremental,
		Recorder:    metrics.NoopRecorder{},
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := builder.Close(); err != nil {
			slog.Warn("Failed to close build cache", "error", err)
		}
	}()

	result, err := builder.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Build completed: %d posts, %d categories, %d skipped in %s\n",
		result.Posts, result.Categories, result.Skipped, result.Duration.Round(time.Millisecond))
	return nil
}
