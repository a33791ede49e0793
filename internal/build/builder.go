// Package build orchestrates the site build pipeline: discover sources,
// process posts, aggregate the site, emit the output tree.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/evjen/blogbuilder/internal/config"
	"github.com/evjen/blogbuilder/internal/content"
	"github.com/evjen/blogbuilder/internal/logfields"
	"github.com/evjen/blogbuilder/internal/markdown"
	"github.com/evjen/blogbuilder/internal/metrics"
	"github.com/evjen/blogbuilder/internal/observability"
	"github.com/evjen/blogbuilder/internal/site"
	"github.com/evjen/blogbuilder/internal/storage"
	"github.com/evjen/blogbuilder/internal/templates"
)

// CacheDir is where the incremental fragment cache lives.
const CacheDir = ".blogbuilder"

// Options configure one Builder.
type Options struct {
	OutputDir   string
	Incremental bool // reuse rendered fragments for unchanged sources
	Recorder    metrics.Recorder
}

// Result summarizes a completed build.
type Result struct {
	Posts      int
	Categories int
	Skipped    int
	Duration   time.Duration
}

// Builder runs the build pipeline. Construct with New; a Builder is
// single-use per Run but safe to reuse sequentially (preview rebuilds).
type Builder struct {
	cfg       *config.Config
	outputDir string
	engine    *templates.Engine
	processor *content.Processor
	discovery *content.Discovery
	cache     storage.Store
	recorder  metrics.Recorder
}

// New wires a Builder from configuration. Missing or unparsable templates
// are a fatal error here, before any post is touched.
func New(cfg *config.Config, opts Options) (*Builder, error) {
	engine, err := templates.Load(cfg.Content.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	var cache storage.Store
	if opts.Incremental {
		fsStore, err := storage.NewFSStore(CacheDir)
		if err != nil {
			return nil, fmt.Errorf("open fragment cache: %w", err)
		}
		cache = fsStore
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}

	return &Builder{
		cfg:       cfg,
		outputDir: outputDir,
		engine:    engine,
		processor: content.NewProcessor(cfg, markdown.New(), cache),
		discovery: content.NewDiscovery(cfg),
		cache:     cache,
		recorder:  recorder,
	}, nil
}

// Close releases the fragment cache, if any.
func (b *Builder) Close() error {
	if b.cache != nil {
		return b.cache.Close()
	}
	return nil
}

// Run executes the full pipeline. Per-post failures are logged and
// skipped; the returned error is fatal (templates, output tree).
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	ctx = observability.WithBuildID(ctx, observability.NewBuildID())

	if err := b.prepareOutput(ctx); err != nil {
		b.recorder.IncBuildOutcome("failed")
		return nil, err
	}

	var sources []content.SourceFile
	err := b.stage(ctx, "discover", func(ctx context.Context) error {
		var err error
		sources, err = b.discovery.Discover()
		return err
	})
	if err != nil {
		b.recorder.IncBuildOutcome("failed")
		return nil, err
	}

	var posts []*content.Post
	skipped := 0
	_ = b.stage(ctx, "posts", func(ctx context.Context) error {
		for _, src := range sources {
			post, err := b.processor.Process(ctx, src)
			if err != nil {
				observability.WarnContext(ctx, "Skipping post",
					logfields.Category(src.Category), logfields.Slug(src.Slug), logfields.Error(err))
				b.recorder.IncPostResult(metrics.ResultSkipped)
				skipped++
				continue
			}
			b.recorder.IncPostResult(metrics.ResultBuilt)
			posts = append(posts, post)
		}
		return nil
	})

	var idx *site.Index
	_ = b.stage(ctx, "aggregate", func(ctx context.Context) error {
		idx = site.BuildIndex(b.cfg, posts, time.Now())
		return nil
	})

	emitted := 0
	err = b.stage(ctx, "emit", func(ctx context.Context) error {
		var err error
		emitted, err = b.emit(ctx, idx)
		return err
	})
	if err != nil {
		b.recorder.IncBuildOutcome("failed")
		return nil, err
	}

	duration := time.Since(start)
	b.recorder.ObserveBuildDuration(duration)
	b.recorder.IncBuildOutcome("success")

	result := &Result{
		Posts:      emitted,
		Categories: len(idx.Categories),
		Skipped:    skipped + (len(posts) - emitted),
		Duration:   duration,
	}
	observability.InfoContext(ctx, "Build complete",
		slog.Int("posts", result.Posts),
		slog.Int("categories", result.Categories),
		slog.Int("skipped", result.Skipped),
		logfields.DurationMS(float64(duration.Milliseconds())))
	return result, nil
}

func (b *Builder) prepareOutput(ctx context.Context) error {
	return b.stage(ctx, "prepare", func(ctx context.Context) error {
		if b.cfg.Output.Clean {
			if err := os.RemoveAll(b.outputDir); err != nil {
				return fmt.Errorf("clean output directory: %w", err)
			}
		}
		if err := os.MkdirAll(b.outputDir, 0o750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		return nil
	})
}

// stage runs fn with stage-scoped logging context and duration recording.
func (b *Builder) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx = observability.WithStage(ctx, name)
	start := time.Now()
	err := fn(ctx)
	b.recorder.ObserveStageDuration(name, time.Since(start))
	if err != nil {
		observability.ErrorContext(ctx, "Stage failed", logfields.Error(err))
	}
	return err
}
