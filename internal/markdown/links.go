package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/evjen/blogbuilder/internal/validate"
)

// placeholderHref replaces link destinations carrying a dangerous scheme.
const placeholderHref = "#"

// safeLinks overrides goldmark's link rendering so that every anchor is
// scheme-checked and carries rel="noopener noreferrer".
type safeLinks struct{}

func (e *safeLinks) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&safeLinkRenderer{}, 500),
	))
}

type safeLinkRenderer struct{}

func (r *safeLinkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
}

func (r *safeLinkRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}

	dest := string(n.Destination)
	if !validate.SafeURL(dest) {
		dest = placeholderHref
	}

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(dest), true)))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(` rel="`)
	_, _ = w.WriteString(mergeRel(existingRel(n)))
	_, _ = w.WriteString(`">`)
	return ast.WalkContinue, nil
}

func (r *safeLinkRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.AutoLink)
	if !entering {
		return ast.WalkContinue, nil
	}

	url := string(n.URL(source))
	label := n.Label(source)
	if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
		url = "mailto:" + url
	}
	if !validate.SafeURL(url) {
		url = placeholderHref
	}

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(url), false)))
	_, _ = w.WriteString(`" rel="`)
	_, _ = w.WriteString(mergeRel(""))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML(label))
	_, _ = w.WriteString("</a>")
	return ast.WalkContinue, nil
}

// existingRel returns any rel attribute already present on the node, e.g.
// via the attribute extension.
func existingRel(n ast.Node) string {
	if v, ok := n.Attribute([]byte("rel")); ok {
		switch rel := v.(type) {
		case string:
			return rel
		case []byte:
			return string(rel)
		}
	}
	return ""
}

// mergeRel appends noopener and noreferrer to the existing rel tokens,
// preserving order and dropping duplicates.
func mergeRel(existing string) string {
	tokens := strings.Fields(existing)
	tokens = append(tokens, "noopener", "noreferrer")

	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}
