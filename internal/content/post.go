package content

import (
	"html/template"
	"regexp"
	"time"

	"github.com/evjen/blogbuilder/internal/headings"
)

// Post is one Markdown source file, fully processed. Posts are constructed
// once per build and immutable thereafter.
type Post struct {
	Category    string
	Slug        string
	Date        time.Time
	Title       string
	Subtitle    string
	Description string
	Tags        []string
	Featured    bool
	ReadingTime string // formatted as "<n> min"
	OGImage     string
	OGTitle     string
	HTML        template.HTML
	Headings    []headings.Heading
	SourcePath  string
}

// Permalink returns the canonical site-relative path of the post page.
func (p *Post) Permalink() string {
	return "/" + p.Category + "/" + p.Slug + "/"
}

// AbsoluteURL joins the permalink onto the site base URL (no trailing slash).
func (p *Post) AbsoluteURL(baseURL string) string {
	return baseURL + p.Permalink()
}

// TOCHTML renders the post's table of contents fragment.
func (p *Post) TOCHTML() template.HTML {
	return headings.RenderTOC(p.Headings)
}

// MobileTOCHTML renders the collapsible table of contents variant.
func (p *Post) MobileTOCHTML() template.HTML {
	return headings.RenderMobileTOC(p.Headings)
}

// SourceFile is a discovered, not yet processed post source.
type SourceFile struct {
	Category string
	Slug     string
	Date     time.Time
	Path     string
}

var filenamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})~([a-z0-9-]+)\.md$`)

// ParseFilename validates a source file name against the required
// YYYY-MM-DD~slug.md pattern. The date must be a real calendar date and the
// slug is restricted to [a-z0-9-]. ok is false for anything else.
func ParseFilename(name string) (date time.Time, slug string, ok bool) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, "", false
	}
	d, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return time.Time{}, "", false
	}
	return d, m[2], true
}
