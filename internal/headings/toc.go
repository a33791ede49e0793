package headings

import (
	"html/template"
	"strings"
)

// RenderTOC renders the heading list as an unordered list of anchor links.
// Level-3 entries carry the toc-sub class so stylesheets can indent them.
// An empty heading list yields an empty fragment.
func RenderTOC(list []Heading) template.HTML {
	if len(list) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<ul class="toc-list">` + "\n")
	for _, h := range list {
		class := ""
		if h.Level == 3 {
			class = ` class="toc-sub"`
		}
		b.WriteString("<li" + class + `><a href="#` + template.HTMLEscapeString(h.ID) + `">` +
			template.HTMLEscapeString(h.Text) + "</a></li>\n")
	}
	b.WriteString("</ul>")
	return template.HTML(b.String())
}

// RenderMobileTOC wraps the same list in a collapsible disclosure widget
// for small screens.
func RenderMobileTOC(list []Heading) template.HTML {
	inner := RenderTOC(list)
	if inner == "" {
		return ""
	}
	return template.HTML(`<details class="toc-mobile"><summary>On this page</summary>` + "\n" +
		string(inner) + "\n</details>")
}
