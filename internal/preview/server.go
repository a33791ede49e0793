// Package preview serves the generated site locally and rebuilds it when
// the content directory changes. It serves static files only; pages are
// never rendered at request time.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/evjen/blogbuilder/internal/build"
	"github.com/evjen/blogbuilder/internal/config"
	"github.com/evjen/blogbuilder/internal/logfields"
	"github.com/evjen/blogbuilder/internal/metrics"
)

// DefaultDebounce batches rapid editor save bursts into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Options configure a preview server.
type Options struct {
	Addr      string
	OutputDir string
	Recorder  *metrics.PrometheusRecorder // nil disables /metrics
	Debounce  time.Duration
}

// Server watches the content tree and serves the output tree.
type Server struct {
	cfg      *config.Config
	opts     Options
	mu       sync.Mutex // serializes rebuilds
	lastErr  error
	rebuilds int
}

// New creates a preview server.
func New(cfg *config.Config, opts Options) *Server {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.Output.Directory
	}
	return &Server{cfg: cfg, opts: opts}
}

// Run builds once, then serves until ctx is canceled. Rebuild failures are
// logged and the previous good output stays up.
func (s *Server) Run(ctx context.Context) error {
	if err := s.rebuild(ctx); err != nil {
		return fmt.Errorf("initial build: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := s.watchContentTree(watcher); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", slog.String("addr", s.opts.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go s.watchLoop(ctx, watcher)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("preview server: %w", err)
	}
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		lastErr := s.lastErr
		rebuilds := s.rebuilds
		s.mu.Unlock()
		if lastErr != nil {
			http.Error(w, lastErr.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, "ok rebuilds=%d\n", rebuilds)
	})
	if s.opts.Recorder != nil {
		mux.Handle("/metrics", s.opts.Recorder.Handler())
	}
	mux.Handle("/", http.FileServer(http.Dir(s.opts.OutputDir)))
	return mux
}

// watchContentTree registers the content root and every category directory.
// Watching directories rather than files survives editor rename-save cycles.
func (s *Server) watchContentTree(watcher *fsnotify.Watcher) error {
	root := s.cfg.Content.Directory
	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("watch content directory %s: %w", root, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read content directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := watcher.Add(filepath.Join(root, entry.Name())); err != nil {
				slog.Warn("Failed to watch category directory",
					logfields.Category(entry.Name()), logfields.Error(err))
			}
		}
	}
	return nil
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New category directories need their own watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if timer == nil {
				timer = time.AfterFunc(s.opts.Debounce, func() { s.rebuildLogged(ctx) })
			} else {
				timer.Reset(s.opts.Debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", logfields.Error(err))
		}
	}
}

func (s *Server) rebuildLogged(ctx context.Context) {
	if err := s.rebuild(ctx); err != nil {
		slog.Error("Rebuild failed, keeping previous output", logfields.Error(err))
	}
}

func (s *Server) rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if s.opts.Recorder != nil {
		recorder = s.opts.Recorder
	}

	builder, err := build.New(s.cfg, build.Options{
		OutputDir:   s.opts.OutputDir,
		Incremental: true,
		Recorder:    recorder,
	})
	if err != nil {
		s.lastErr = err
		return err
	}
	defer builder.Close()

	result, err := builder.Run(ctx)
	s.lastErr = err
	if err != nil {
		return err
	}
	s.rebuilds++
	slog.Info("Preview rebuilt", logfields.Count(result.Posts),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))
	return nil
}
