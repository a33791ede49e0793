// Package markdown renders post bodies to HTML fragments.
//
// Raw HTML in the source is never passed through (goldmark's default), bare
// URLs are autolinked, and typographic substitutions are applied. Link
// rendering is hardened: see links.go.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// DefaultHighlightStyle is the chroma style used for fenced code blocks.
const DefaultHighlightStyle = "github"

// Renderer converts Markdown bodies to HTML fragments.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer with the blog's fixed rendering policy.
func New() *Renderer {
	return NewWithStyle(DefaultHighlightStyle)
}

// NewWithStyle creates a Renderer using the named chroma style for code
// blocks, falling back to the default when the name is unknown.
func NewWithStyle(style string) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,          // tables, strikethrough, autolinks, task lists
			extension.Typographer,  // smart quotes and dashes
			highlighting.NewHighlighting(
				highlighting.WithStyle(resolveStyle(style)),
			),
			&safeLinks{},
		),
	)
	return &Renderer{md: md}
}

// resolveStyle maps an unknown style name to the default. chroma's Get
// silently substitutes its own fallback style, so membership is checked
// against the registry instead.
func resolveStyle(name string) string {
	if _, ok := styles.Registry[name]; !ok {
		return DefaultHighlightStyle
	}
	return name
}

// Render converts a Markdown body to a trusted HTML fragment.
func (r *Renderer) Render(body []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
