package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/evjen/blogbuilder/internal/config"
	"github.com/evjen/blogbuilder/internal/markdown"
	"github.com/evjen/blogbuilder/internal/storage"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Build.WordsPerMinute = config.DefaultWordsPerMinute
	return cfg
}

func writeSource(t *testing.T, content string) SourceFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "2024-01-02~hello-world.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return SourceFile{
		Category: "programming",
		Slug:     "hello-world",
		Date:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Path:     path,
	}
}

func TestProcess_FullPost(t *testing.T) {
	src := writeSource(t, `---
title: Hello
subtitle: sub
tags: [go]
featured: true
---
Intro paragraph.

## Section One

More text.
`)

	proc := NewProcessor(testConfig(), markdown.New(), nil)
	post, err := proc.Process(context.Background(), src)
	require.NoError(t, err)

	require.Equal(t, "Hello", post.Title)
	require.Equal(t, "sub", post.Subtitle)
	require.True(t, post.Featured)
	require.Equal(t, "1 min", post.ReadingTime)
	require.Equal(t, "Intro paragraph.", post.Description)
	require.Len(t, post.Headings, 1)
	require.Equal(t, "section-one", post.Headings[0].ID)
	require.Contains(t, string(post.HTML), `id="section-one"`)
	require.Equal(t, "/programming/hello-world/", post.Permalink())
}

func TestProcess_TitleFallsBackToSlug(t *testing.T) {
	src := writeSource(t, "no frontmatter here\n")

	proc := NewProcessor(testConfig(), markdown.New(), nil)
	post, err := proc.Process(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, "Hello World", post.Title)
}

func TestProcess_UnsafeOGImageDropped(t *testing.T) {
	src := writeSource(t, "---\nog_image: javascript:alert(1)\n---\nbody\n")

	proc := NewProcessor(testConfig(), markdown.New(), nil)
	post, err := proc.Process(context.Background(), src)
	require.NoError(t, err)
	require.Empty(t, post.OGImage)
}

func TestProcess_MalformedFrontmatter_StillBuilds(t *testing.T) {
	src := writeSource(t, "---\ntitle: [broken\n---\nThe body.\n")

	proc := NewProcessor(testConfig(), markdown.New(), nil)
	post, err := proc.Process(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, "Hello World", post.Title)
	require.Contains(t, string(post.HTML), "The body.")
}

func TestProcess_CacheHitProducesSameResult(t *testing.T) {
	src := writeSource(t, "---\ntitle: Cached\n---\n## Heading\n\nbody text\n")

	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	proc := NewProcessor(testConfig(), markdown.New(), store)

	first, err := proc.Process(context.Background(), src)
	require.NoError(t, err)
	second, err := proc.Process(context.Background(), src)
	require.NoError(t, err)

	require.Equal(t, first.HTML, second.HTML)
	require.Equal(t, first.Headings, second.Headings)
}

func TestProcess_MissingFile_ReturnsError(t *testing.T) {
	proc := NewProcessor(testConfig(), markdown.New(), nil)
	_, err := proc.Process(context.Background(), SourceFile{Path: filepath.Join(t.TempDir(), "gone.md")})
	require.Error(t, err)
}
