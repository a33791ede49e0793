package templates

import (
	"bytes"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSite() SiteContext {
	return SiteContext{
		Title:   "Test Blog",
		Author:  "Tester",
		BaseURL: "https://example.com",
		Categories: []CategoryLink{
			{ID: "programming", Label: "Programming", URL: "/programming/"},
		},
	}
}

func TestRenderPost_EscapesTextValues(t *testing.T) {
	engine, err := Load("")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = engine.RenderPost(&buf, PostContext{
		Site:          testSite(),
		Meta:          PageMeta{Title: "T <script>"},
		Title:         "Hello <script>alert(1)</script>",
		DateDisplay:   "January 2, 2024",
		ReadingTime:   "3 min",
		CategoryID:    "programming",
		CategoryLabel: "Programming",
		Content:       template.HTML("<p>trusted <em>content</em></p>"),
		TOC:           template.HTML(`<ul class="toc-list"><li><a href="#a">A</a></li></ul>`),
	})
	require.NoError(t, err)

	out := buf.String()
	require.NotContains(t, out, "<script>alert(1)</script>")
	require.Contains(t, out, "&lt;script&gt;")
	require.Contains(t, out, "<p>trusted <em>content</em></p>")
	require.Contains(t, out, `class="toc-list"`)
}

func TestRenderPost_OmitsEmptyMetaTags(t *testing.T) {
	engine, err := Load("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, engine.RenderPost(&buf, PostContext{Site: testSite(), Meta: PageMeta{Title: "x"}}))

	out := buf.String()
	require.NotContains(t, out, "og:title")
	require.NotContains(t, out, `rel="canonical"`)
}

func TestRenderPost_EmitsMetaBlockOnce(t *testing.T) {
	engine, err := Load("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, engine.RenderPost(&buf, PostContext{
		Site: testSite(),
		Meta: PageMeta{
			Title:        "x",
			Description:  "d",
			CanonicalURL: "https://example.com/a/b/",
			OGTitle:      "x",
			OGType:       "article",
		},
	}))

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, `rel="canonical"`))
	require.Equal(t, 1, strings.Count(out, "og:title"))
}

func TestRenderIndex_EmptyCategoryStillRendersCard(t *testing.T) {
	engine, err := Load("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, engine.RenderIndex(&buf, IndexContext{
		Site: testSite(),
		Meta: PageMeta{Title: "home"},
		Sections: []CategorySection{
			{ID: "notes", Label: "Notes", URL: "/notes/"},
		},
	}))

	out := buf.String()
	require.Contains(t, out, "Notes")
	require.Contains(t, out, "No posts yet.")
}

func TestRenderCategory_NoPostsMessage(t *testing.T) {
	engine, err := Load("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, engine.RenderCategory(&buf, CategoryContext{
		Site: testSite(), Meta: PageMeta{Title: "Notes"}, ID: "notes", Label: "Notes",
	}))

	require.Contains(t, buf.String(), "No posts exist in this category yet.")
}

func TestLoad_OverrideDirectoryWins(t *testing.T) {
	dir := t.TempDir()
	custom := `<!DOCTYPE html><html><head>{{template "head" .}}</head><body>CUSTOM 404</body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "404.html"), []byte(custom), 0o600))

	engine, err := Load(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, engine.RenderNotFound(&buf, NotFoundContext{Site: testSite(), Meta: PageMeta{Title: "404"}}))
	require.Contains(t, buf.String(), "CUSTOM 404")
}

func TestStaticAssets_ContainDefaults(t *testing.T) {
	assets, err := StaticAssets()
	require.NoError(t, err)

	css, err := fs.ReadFile(assets, "css/main.css")
	require.NoError(t, err)
	require.Contains(t, string(css), "prefers-color-scheme")

	js, err := fs.ReadFile(assets, "js/theme.js")
	require.NoError(t, err)
	require.Contains(t, string(js), "localStorage")
}
