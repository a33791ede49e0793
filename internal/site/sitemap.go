package site

import (
	"encoding/xml"
	"fmt"
	"time"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// RenderSitemap lists the home page, every category page and every post
// page. Post pages use the publish date at midnight UTC as last-modified;
// index and category pages use the build time.
func RenderSitemap(idx *Index, baseURL string) ([]byte, error) {
	buildMod := idx.BuildTime.UTC().Format(time.RFC3339)

	urls := []sitemapURL{{Loc: baseURL + "/", LastMod: buildMod}}
	for _, category := range idx.Categories {
		urls = append(urls, sitemapURL{Loc: baseURL + "/" + category + "/", LastMod: buildMod})
	}
	for _, p := range idx.Posts {
		midnight := time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), 0, 0, 0, 0, time.UTC)
		urls = append(urls, sitemapURL{
			Loc:     p.AbsoluteURL(baseURL),
			LastMod: midnight.Format(time.RFC3339),
		})
	}

	data, err := xml.MarshalIndent(urlset{Xmlns: sitemapNamespace, URLs: urls}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}
