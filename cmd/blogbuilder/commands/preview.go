package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/evjen/blogbuilder/internal/config"
	"github.com/evjen/blogbuilder/internal/metrics"
	"github.com/evjen/blogbuilder/internal/preview"
)

// PreviewCmd serves the generated site locally, rebuilding when the
// content directory changes.
type PreviewCmd struct {
	Addr     string        `name:"addr" default:"localhost:8080" help:"Address to listen on."`
	Output   string        `short:"o" name:"output" help:"Output directory for the generated site (overrides config)."`
	Metrics  bool          `name:"metrics" help:"Expose Prometheus metrics on /metrics."`
	Debounce time.Duration `name:"debounce" default:"500ms" help:"Delay between a content change and the rebuild."`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts := preview.Options{
		Addr:      p.Addr,
		OutputDir: p.Output,
		Debounce:  p.Debounce,
	}
	if p.Metrics {
		opts.Recorder = metrics.NewPrometheusRecorder(nil)
	}

	fmt.Printf("Previewing site at http://%s\n", p.Addr)
	return preview.New(cfg, opts).Run(sigctx)
}
