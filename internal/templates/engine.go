// Package templates renders the site's HTML pages from typed contexts.
//
// Built-in templates are embedded; a user-supplied directory can override
// any of them by file name.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
)

//go:embed builtin/*.html
var builtinFS embed.FS

//go:embed static
var staticFS embed.FS

// Engine holds the parsed template set.
type Engine struct {
	set *template.Template
}

// Load parses the embedded templates, then any templates in overrideDir
// (which replace built-ins with the same name). overrideDir may be empty.
func Load(overrideDir string) (*Engine, error) {
	set, err := template.ParseFS(builtinFS, "builtin/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse builtin templates: %w", err)
	}
	if overrideDir != "" {
		overrides, err := filepath.Glob(filepath.Join(overrideDir, "*.html"))
		if err != nil {
			return nil, fmt.Errorf("scan template overrides: %w", err)
		}
		if len(overrides) > 0 {
			set, err = set.ParseFiles(overrides...)
			if err != nil {
				return nil, fmt.Errorf("parse template overrides: %w", err)
			}
		}
	}
	return &Engine{set: set}, nil
}

// RenderPost writes a post page.
func (e *Engine) RenderPost(w io.Writer, ctx PostContext) error {
	return e.execute(w, "post.html", ctx)
}

// RenderIndex writes the home page.
func (e *Engine) RenderIndex(w io.Writer, ctx IndexContext) error {
	return e.execute(w, "index.html", ctx)
}

// RenderCategory writes a category listing page.
func (e *Engine) RenderCategory(w io.Writer, ctx CategoryContext) error {
	return e.execute(w, "category.html", ctx)
}

// RenderNotFound writes the 404 page.
func (e *Engine) RenderNotFound(w io.Writer, ctx NotFoundContext) error {
	return e.execute(w, "404.html", ctx)
}

func (e *Engine) execute(w io.Writer, name string, data any) error {
	if err := e.set.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// StaticAssets returns the embedded default css/js assets rooted at
// "static" (css/main.css, js/theme.js).
func StaticAssets() (fs.FS, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("embedded static assets: %w", err)
	}
	return sub, nil
}
