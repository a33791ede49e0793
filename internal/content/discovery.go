package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/evjen/blogbuilder/internal/config"
	"github.com/evjen/blogbuilder/internal/logfields"
	"github.com/evjen/blogbuilder/internal/validate"
)

// Discovery enumerates post source files under the content directory.
// Layout is one level deep: content/<category>/<YYYY-MM-DD~slug>.md.
// Anything failing validation is skipped with a warning, never an error.
type Discovery struct {
	contentDir string
}

// NewDiscovery creates a discovery instance for the configured content tree.
func NewDiscovery(cfg *config.Config) *Discovery {
	return &Discovery{contentDir: cfg.Content.Directory}
}

// Discover returns all valid post sources, in directory walk order.
func (d *Discovery) Discover() ([]SourceFile, error) {
	entries, err := os.ReadDir(d.contentDir)
	if err != nil {
		return nil, fmt.Errorf("read content directory %s: %w", d.contentDir, err)
	}

	var sources []SourceFile
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		category := entry.Name()
		if !validate.Category(category) {
			slog.Warn("Skipping invalid category directory", logfields.Category(category))
			continue
		}

		files, err := os.ReadDir(filepath.Join(d.contentDir, category))
		if err != nil {
			slog.Warn("Failed to read category directory", logfields.Category(category), logfields.Error(err))
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			name := f.Name()
			if !validate.Filename(name) {
				slog.Warn("Skipping unsafe filename", logfields.Category(category), logfields.Path(name))
				continue
			}
			date, slug, ok := ParseFilename(name)
			if !ok {
				slog.Warn("Skipping file not matching YYYY-MM-DD~slug.md", logfields.Category(category), logfields.Path(name))
				continue
			}
			sources = append(sources, SourceFile{
				Category: category,
				Slug:     slug,
				Date:     date,
				Path:     filepath.Join(d.contentDir, category, name),
			})
		}
	}

	slog.Info("Post sources discovered", logfields.Count(len(sources)))
	return sources, nil
}
