// Package site aggregates processed posts into the derived site artifacts:
// the ordered post index, category listings, the JSON post index, the
// sitemap and robots.txt.
package site

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/evjen/blogbuilder/internal/config"
	"github.com/evjen/blogbuilder/internal/content"
	"github.com/evjen/blogbuilder/internal/util/sets"
)

// Index is the ordered sequence of all accepted posts plus the discovered
// category set. It is derived once per build and read-only afterwards.
type Index struct {
	Posts      []*content.Post // sorted by date descending, ties in encounter order
	Categories []string        // fixed navigation categories ∪ observed categories
	BuildTime  time.Time
}

// BuildIndex sorts posts and computes the category set. The fixed
// navigation categories keep their configured order; categories only
// observed in content follow, alphabetically.
func BuildIndex(cfg *config.Config, posts []*content.Post, buildTime time.Time) *Index {
	sorted := make([]*content.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	known := sets.New[string](cfg.Content.Categories...)
	categories := append([]string(nil), cfg.Content.Categories...)

	var observed []string
	seen := sets.New[string]()
	for _, p := range sorted {
		if !known.Has(p.Category) && !seen.Has(p.Category) {
			seen.Add(p.Category)
			observed = append(observed, p.Category)
		}
	}
	sort.Strings(observed)
	categories = append(categories, observed...)

	return &Index{Posts: sorted, Categories: categories, BuildTime: buildTime}
}

// Featured returns all featured posts, most recent first.
func (idx *Index) Featured() []*content.Post {
	var out []*content.Post
	for _, p := range idx.Posts {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Recent returns up to limit posts, most recent first.
func (idx *Index) Recent(limit int) []*content.Post {
	if limit > len(idx.Posts) {
		limit = len(idx.Posts)
	}
	return idx.Posts[:limit]
}

// ByCategory returns the posts of one category, most recent first.
func (idx *Index) ByCategory(category string) []*content.Post {
	var out []*content.Post
	for _, p := range idx.Posts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

var titler = cases.Title(language.English)

// CategoryLabel derives the human-readable label of a category id:
// "side-projects" becomes "Side Projects".
func CategoryLabel(id string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(id)
	return titler.String(cleaned)
}
