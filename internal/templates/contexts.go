package templates

import "html/template"

// Typed template contexts. Using structures instead of placeholder-marker
// substitution means escaping is handled by html/template and a stray
// marker in content can never collide with the page scaffold.

// SiteContext carries site-wide values available to every page.
type SiteContext struct {
	Title       string
	Description string
	Author      string
	BaseURL     string
	Categories  []CategoryLink
}

// CategoryLink is one navigation entry.
type CategoryLink struct {
	ID    string
	Label string
	URL   string
}

// PageMeta feeds the document head: description, canonical and Open Graph
// tags. Empty fields are omitted by the templates, so pages never emit
// duplicate or blank tags.
type PageMeta struct {
	Title         string
	Description   string
	CanonicalURL  string
	OGTitle       string
	OGDescription string
	OGType        string
	OGURL         string
	OGImage       string
}

// PostSummary is a post as shown in listings.
type PostSummary struct {
	Title         string
	Description   string
	Permalink     string
	DateDisplay   string
	ReadingTime   string
	CategoryID    string
	CategoryLabel string
	Tags          []string
	Featured      bool
}

// PostContext renders a single post page.
type PostContext struct {
	Site          SiteContext
	Meta          PageMeta
	Title         string
	Subtitle      string
	DateDisplay   string
	ReadingTime   string
	CategoryID    string
	CategoryLabel string
	Tags          []string
	Content       template.HTML // trusted: produced by the markdown renderer
	TOC           template.HTML // trusted: produced by the headings package
	MobileTOC     template.HTML
}

// CategorySection is one category card on the home page.
type CategorySection struct {
	ID    string
	Label string
	URL   string
	Posts []PostSummary
	More  bool // true when the card is capped and the category page has more
}

// IndexContext renders the home page.
type IndexContext struct {
	Site         SiteContext
	Meta         PageMeta
	Featured     []PostSummary
	FeaturedMore bool // true when more featured posts exist than shown
	Recent       []PostSummary
	Sections     []CategorySection
}

// CategoryContext renders a dedicated category listing page.
type CategoryContext struct {
	Site  SiteContext
	Meta  PageMeta
	ID    string
	Label string
	Posts []PostSummary
}

// NotFoundContext renders the 404 page.
type NotFoundContext struct {
	Site SiteContext
	Meta PageMeta
}
