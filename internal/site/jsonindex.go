package site

import (
	"encoding/json"
	"fmt"
)

// postIndexEntry is one post in the machine-readable index. The file is a
// derived artifact for external consumers, never a source of truth.
type postIndexEntry struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Slug        string   `json:"slug"`
	Permalink   string   `json:"permalink"`
	URL         string   `json:"url"`
}

// RenderJSONIndex serializes all post metadata as posts-index.json.
func RenderJSONIndex(idx *Index, baseURL string) ([]byte, error) {
	entries := make([]postIndexEntry, 0, len(idx.Posts))
	for _, p := range idx.Posts {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		entries = append(entries, postIndexEntry{
			Title:       p.Title,
			Description: p.Description,
			Tags:        tags,
			Category:    p.Category,
			Date:        p.Date.Format("2006-01-02"),
			Slug:        p.Slug,
			Permalink:   p.Permalink(),
			URL:         p.AbsoluteURL(baseURL),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal posts index: %w", err)
	}
	return append(data, '\n'), nil
}
