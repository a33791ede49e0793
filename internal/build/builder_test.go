package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evjen/blogbuilder/internal/config"
)

func testConfig(t *testing.T, files map[string]string) (*config.Config, string) {
	t.Helper()
	contentDir := t.TempDir()
	for rel, data := range files {
		path := filepath.Join(contentDir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	}

	cfg := &config.Config{}
	cfg.Site.Title = "Test Blog"
	cfg.Site.BaseURL = "https://example.com"
	cfg.Content.Directory = contentDir
	cfg.Content.Categories = []string{"programming", "notes"}
	cfg.Output.Clean = true
	cfg.Build.FeaturedLimit = config.DefaultFeaturedLimit
	cfg.Build.RecentLimit = config.DefaultRecentLimit
	cfg.Build.HomeCardLimit = config.DefaultHomeCardLimit
	cfg.Build.WordsPerMinute = config.DefaultWordsPerMinute

	return cfg, t.TempDir()
}

func runBuild(t *testing.T, cfg *config.Config, outputDir string) *Result {
	t.Helper()
	builder, err := New(cfg, Options{OutputDir: outputDir})
	require.NoError(t, err)
	defer builder.Close()

	result, err := builder.Run(context.Background())
	require.NoError(t, err)
	return result
}

func readOutput(t *testing.T, outputDir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(outputDir, rel))
	require.NoError(t, err)
	return string(data)
}

func TestRun_FullSite(t *testing.T) {
	cfg, out := testConfig(t, map[string]string{
		"programming/2024-01-02~hello.md": "---\ntitle: Hello\nfeatured: true\n---\nIntro.\n\n## Section\n\nText.\n",
		"projects/2024-02-03~widget.md":   "---\ntitle: Widget\n---\nA widget.\n",
	})

	result := runBuild(t, cfg, out)
	require.Equal(t, 2, result.Posts)
	require.Equal(t, 3, result.Categories) // programming, notes, projects
	require.Zero(t, result.Skipped)

	for _, rel := range []string{
		"index.html",
		"404.html",
		"robots.txt",
		"sitemap.xml",
		"posts-index.json",
		"css/main.css",
		"js/theme.js",
		"programming/index.html",
		"notes/index.html",
		"projects/index.html",
		filepath.Join("programming", "hello", "index.html"),
		filepath.Join("projects", "widget", "index.html"),
	} {
		_, err := os.Stat(filepath.Join(out, rel))
		require.NoError(t, err, "expected output file %s", rel)
	}

	postPage := readOutput(t, out, filepath.Join("programming", "hello", "index.html"))
	require.Contains(t, postPage, `id="section"`)
	require.Contains(t, postPage, `rel="canonical" href="https://example.com/programming/hello/"`)
	require.Contains(t, postPage, "1 min")
}

func TestRun_EmptyCategoryStillGetsPage(t *testing.T) {
	cfg, out := testConfig(t, map[string]string{
		"programming/2024-01-02~a.md": "body\n",
	})

	runBuild(t, cfg, out)

	notesPage := readOutput(t, out, "notes/index.html")
	require.Contains(t, notesPage, "No posts exist in this category yet.")

	sitemap := readOutput(t, out, "sitemap.xml")
	require.Contains(t, sitemap, "<loc>https://example.com/notes/</loc>")
}

func TestRun_InvalidSourcesSkippedNotFatal(t *testing.T) {
	cfg, out := testConfig(t, map[string]string{
		"programming/2024-01-02~good.md": "fine\n",
		"programming/bad name.md":        "skipped\n",
		"programming/2024-99-99~bad.md":  "skipped\n",
	})

	result := runBuild(t, cfg, out)
	require.Equal(t, 1, result.Posts)
}

func TestRun_RecentPostsOrderedByDateDescending(t *testing.T) {
	cfg, out := testConfig(t, map[string]string{
		"notes/2024-01-01~jan.md": "---\ntitle: JanPost\n---\nx\n",
		"notes/2024-03-01~mar.md": "---\ntitle: MarPost\n---\nx\n",
		"notes/2023-12-31~dec.md": "---\ntitle: DecPost\n---\nx\n",
	})

	runBuild(t, cfg, out)

	index := readOutput(t, out, "index.html")
	mar := strings.Index(index, "MarPost")
	jan := strings.Index(index, "JanPost")
	dec := strings.Index(index, "DecPost")
	require.Greater(t, mar, -1)
	require.Less(t, mar, jan)
	require.Less(t, jan, dec)
}

func TestRun_Idempotent(t *testing.T) {
	cfg, out := testConfig(t, map[string]string{
		"programming/2024-01-02~stable.md": "---\ntitle: Stable\n---\nSame words.\n",
	})

	runBuild(t, cfg, out)
	first := readOutput(t, out, filepath.Join("programming", "stable", "index.html"))
	firstIndex := readOutput(t, out, "index.html")

	runBuild(t, cfg, out)
	second := readOutput(t, out, filepath.Join("programming", "stable", "index.html"))
	secondIndex := readOutput(t, out, "index.html")

	require.Equal(t, first, second)
	require.Equal(t, firstIndex, secondIndex)
}

func TestRun_RobotsVerbatimWhenSourceProvided(t *testing.T) {
	cfg, out := testConfig(t, map[string]string{
		"notes/2024-01-01~a.md": "x\n",
	})
	robotsSrc := filepath.Join(t.TempDir(), "robots.txt")
	require.NoError(t, os.WriteFile(robotsSrc, []byte("User-agent: *\nDisallow: /drafts/\n"), 0o600))
	cfg.Content.RobotsFile = robotsSrc

	runBuild(t, cfg, out)
	require.Equal(t, "User-agent: *\nDisallow: /drafts/\n", readOutput(t, out, "robots.txt"))
}

func TestRun_MissingContentDirIsFatal(t *testing.T) {
	cfg, out := testConfig(t, nil)
	cfg.Content.Directory = filepath.Join(t.TempDir(), "missing")

	builder, err := New(cfg, Options{OutputDir: out})
	require.NoError(t, err)
	defer builder.Close()

	_, err = builder.Run(context.Background())
	require.Error(t, err)
}

func TestRun_IncrementalSecondBuildMatches(t *testing.T) {
	cfg, out := testConfig(t, map[string]string{
		"notes/2024-01-01~cached.md": "---\ntitle: Cached\n---\n## Heading\n\nwords here\n",
	})

	wd := t.TempDir()
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(wd))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	builder, err := New(cfg, Options{OutputDir: out, Incremental: true})
	require.NoError(t, err)
	_, err = builder.Run(context.Background())
	require.NoError(t, err)
	first := readOutput(t, out, filepath.Join("notes", "cached", "index.html"))
	require.NoError(t, builder.Close())

	builder, err = New(cfg, Options{OutputDir: out, Incremental: true})
	require.NoError(t, err)
	_, err = builder.Run(context.Background())
	require.NoError(t, err)
	second := readOutput(t, out, filepath.Join("notes", "cached", "index.html"))
	require.NoError(t, builder.Close())

	require.Equal(t, first, second)
}

func TestWriteFile_RejectsEscapingPath(t *testing.T) {
	cfg, out := testConfig(t, nil)
	builder, err := New(cfg, Options{OutputDir: out})
	require.NoError(t, err)
	defer builder.Close()

	err = builder.writeFile(filepath.Join("..", "escape.html"), []byte("nope"))
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(filepath.Dir(out), "escape.html"))
	require.True(t, os.IsNotExist(statErr))
}
