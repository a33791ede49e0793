package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_RawHTML_NotPassedThrough(t *testing.T) {
	html := render(t, "before\n\n<script>alert(1)</script>\n\nafter")

	require.NotContains(t, html, "<script>")
}

func TestRender_InlineRawHTML_NotPassedThrough(t *testing.T) {
	html := render(t, "hello <em onclick=\"x()\">world</em>")

	require.NotContains(t, html, "onclick")
}

func TestRender_Typographer_SmartQuotes(t *testing.T) {
	html := render(t, `"quoted" -- dash`)

	require.Contains(t, html, "&ldquo;quoted&rdquo;")
	require.Contains(t, html, "&ndash;")
}

func TestRender_FencedCodeBlock_Highlighted(t *testing.T) {
	html := render(t, "```go\npackage main\n```\n")

	require.Contains(t, html, "<pre")
	require.NotContains(t, html, "```")
}

func TestRender_GFMTable(t *testing.T) {
	html := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")

	require.Contains(t, html, "<table>")
}

func TestRender_Headings(t *testing.T) {
	html := render(t, "## Section\n\n### Subsection\n")

	require.Contains(t, html, "<h2>Section</h2>")
	require.Contains(t, html, "<h3>Subsection</h3>")
}

func TestNewWithStyle_UnknownStyle_FallsBack(t *testing.T) {
	r := NewWithStyle("definitely-not-a-style")
	out, err := r.Render([]byte("```go\nvar x int\n```\n"))
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestResolveStyle(t *testing.T) {
	require.Equal(t, DefaultHighlightStyle, resolveStyle("definitely-not-a-style"))
	require.Equal(t, "monokai", resolveStyle("monokai"))
	require.Equal(t, DefaultHighlightStyle, resolveStyle(""))
}
