// Package headings annotates rendered post HTML with anchor ids for h2/h3
// elements and builds table-of-contents fragments from them.
//
// The pass works on a parsed HTML tree rather than regexes so malformed
// markup cannot confuse it.
package headings

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// fallbackSlug is used when a heading's text yields no slug characters.
const fallbackSlug = "section"

// Heading is one h2/h3 in a rendered post.
type Heading struct {
	Level int    // 2 or 3
	Text  string // plain text content
	ID    string // generated anchor id, unique within the post
}

// Annotate parses an HTML fragment, injects unique anchor ids into every
// h2/h3 element, and returns the modified fragment plus the ordered
// heading list.
func Annotate(fragment string) (string, []Heading, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", nil, fmt.Errorf("parse html fragment: %w", err)
	}

	var headings []Heading
	used := make(map[string]struct{})

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "h2" || n.Data == "h3") {
			level := 2
			if n.Data == "h3" {
				level = 3
			}
			text := textContent(n)
			id := uniqueID(Slugify(text), used)
			setID(n, id)
			headings = append(headings, Heading{Level: level, Text: text, ID: id})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		walk(n)
		if err := html.Render(&buf, n); err != nil {
			return "", nil, fmt.Errorf("render html fragment: %w", err)
		}
	}
	return buf.String(), headings, nil
}

// Slugify derives a URL-safe anchor slug from heading text: lowercase,
// Unicode letters and digits preserved, whitespace collapsed to single
// hyphens, all other runes stripped.
func Slugify(text string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingHyphen = true
		}
	}
	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

// uniqueID resolves collisions by suffixing an incrementing counter:
// foo, foo-1, foo-2, ...
func uniqueID(slug string, used map[string]struct{}) string {
	candidate := slug
	for i := 1; ; i++ {
		if _, taken := used[candidate]; !taken {
			used[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

func setID(n *html.Node, id string) {
	for i := range n.Attr {
		if n.Attr[i].Key == "id" {
			n.Attr[i].Val = id
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
