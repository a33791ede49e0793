package build

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/evjen/blogbuilder/internal/content"
	"github.com/evjen/blogbuilder/internal/logfields"
	"github.com/evjen/blogbuilder/internal/observability"
	"github.com/evjen/blogbuilder/internal/site"
	"github.com/evjen/blogbuilder/internal/templates"
	"github.com/evjen/blogbuilder/internal/validate"
)

const dateDisplayFormat = "January 2, 2006"

// emit writes the whole output tree. Per-post failures are logged and the
// post dropped; everything else is fatal. Returns the number of post pages
// written.
func (b *Builder) emit(ctx context.Context, idx *site.Index) (int, error) {
	siteCtx := b.siteContext(idx)

	emitted := 0
	for _, p := range idx.Posts {
		if err := b.emitPost(siteCtx, p); err != nil {
			observability.WarnContext(ctx, "Skipping post page",
				logfields.Category(p.Category), logfields.Slug(p.Slug), logfields.Error(err))
			continue
		}
		emitted++
	}

	if err := b.emitIndex(siteCtx, idx); err != nil {
		return emitted, err
	}
	for _, category := range idx.Categories {
		if err := b.emitCategory(siteCtx, idx, category); err != nil {
			return emitted, err
		}
	}
	if err := b.emitNotFound(siteCtx); err != nil {
		return emitted, err
	}
	if err := b.emitArtifacts(idx); err != nil {
		return emitted, err
	}
	if err := b.emitAssets(); err != nil {
		return emitted, err
	}
	return emitted, nil
}

func (b *Builder) siteContext(idx *site.Index) templates.SiteContext {
	links := make([]templates.CategoryLink, 0, len(idx.Categories))
	for _, c := range idx.Categories {
		links = append(links, templates.CategoryLink{
			ID:    c,
			Label: site.CategoryLabel(c),
			URL:   "/" + c + "/",
		})
	}
	return templates.SiteContext{
		Title:       b.cfg.Site.Title,
		Description: b.cfg.Site.Description,
		Author:      b.cfg.Site.Author,
		BaseURL:     b.cfg.BaseURL(),
		Categories:  links,
	}
}

func summarize(p *content.Post) templates.PostSummary {
	return templates.PostSummary{
		Title:         p.Title,
		Description:   p.Description,
		Permalink:     p.Permalink(),
		DateDisplay:   p.Date.Format(dateDisplayFormat),
		ReadingTime:   p.ReadingTime,
		CategoryID:    p.Category,
		CategoryLabel: site.CategoryLabel(p.Category),
		Tags:          p.Tags,
		Featured:      p.Featured,
	}
}

func summarizeAll(posts []*content.Post) []templates.PostSummary {
	out := make([]templates.PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, summarize(p))
	}
	return out
}

func (b *Builder) emitPost(siteCtx templates.SiteContext, p *content.Post) error {
	ogTitle := p.OGTitle
	if ogTitle == "" {
		ogTitle = p.Title
	}
	absURL := p.AbsoluteURL(b.cfg.BaseURL())

	pageCtx := templates.PostContext{
		Site: siteCtx,
		Meta: templates.PageMeta{
			Title:         p.Title,
			Description:   p.Description,
			CanonicalURL:  absURL,
			OGTitle:       ogTitle,
			OGDescription: p.Description,
			OGType:        "article",
			OGURL:         absURL,
			OGImage:       p.OGImage,
		},
		Title:         p.Title,
		Subtitle:      p.Subtitle,
		DateDisplay:   p.Date.Format(dateDisplayFormat),
		ReadingTime:   p.ReadingTime,
		CategoryID:    p.Category,
		CategoryLabel: site.CategoryLabel(p.Category),
		Tags:          p.Tags,
		Content:       p.HTML,
		TOC:           p.TOCHTML(),
		MobileTOC:     p.MobileTOCHTML(),
	}

	var buf bytes.Buffer
	if err := b.engine.RenderPost(&buf, pageCtx); err != nil {
		return err
	}
	return b.writeFile(filepath.Join(p.Category, p.Slug, "index.html"), buf.Bytes())
}

func (b *Builder) emitIndex(siteCtx templates.SiteContext, idx *site.Index) error {
	featured := idx.Featured()
	featuredShown := featured
	if len(featuredShown) > b.cfg.Build.FeaturedLimit {
		featuredShown = featuredShown[:b.cfg.Build.FeaturedLimit]
	}

	sections := make([]templates.CategorySection, 0, len(idx.Categories))
	for _, category := range idx.Categories {
		inCategory := idx.ByCategory(category)
		shown := inCategory
		if len(shown) > b.cfg.Build.HomeCardLimit {
			shown = shown[:b.cfg.Build.HomeCardLimit]
		}
		sections = append(sections, templates.CategorySection{
			ID:    category,
			Label: site.CategoryLabel(category),
			URL:   "/" + category + "/",
			Posts: summarizeAll(shown),
			More:  len(inCategory) > len(shown),
		})
	}

	pageCtx := templates.IndexContext{
		Site: siteCtx,
		Meta: templates.PageMeta{
			Title:         b.cfg.Site.Title,
			Description:   b.cfg.Site.Description,
			CanonicalURL:  b.cfg.BaseURL() + "/",
			OGTitle:       b.cfg.Site.Title,
			OGDescription: b.cfg.Site.Description,
			OGType:        "website",
			OGURL:         b.cfg.BaseURL() + "/",
		},
		Featured:     summarizeAll(featuredShown),
		FeaturedMore: len(featured) > len(featuredShown),
		Recent:       summarizeAll(idx.Recent(b.cfg.Build.RecentLimit)),
		Sections:     sections,
	}

	var buf bytes.Buffer
	if err := b.engine.RenderIndex(&buf, pageCtx); err != nil {
		return err
	}
	return b.writeFile("index.html", buf.Bytes())
}

func (b *Builder) emitCategory(siteCtx templates.SiteContext, idx *site.Index, category string) error {
	label := site.CategoryLabel(category)
	pageCtx := templates.CategoryContext{
		Site: siteCtx,
		Meta: templates.PageMeta{
			Title:        label + " — " + b.cfg.Site.Title,
			Description:  b.cfg.Site.Description,
			CanonicalURL: b.cfg.BaseURL() + "/" + category + "/",
			OGTitle:      label,
			OGType:       "website",
			OGURL:        b.cfg.BaseURL() + "/" + category + "/",
		},
		ID:    category,
		Label: label,
		Posts: summarizeAll(idx.ByCategory(category)),
	}

	var buf bytes.Buffer
	if err := b.engine.RenderCategory(&buf, pageCtx); err != nil {
		return err
	}
	return b.writeFile(filepath.Join(category, "index.html"), buf.Bytes())
}

func (b *Builder) emitNotFound(siteCtx templates.SiteContext) error {
	var buf bytes.Buffer
	err := b.engine.RenderNotFound(&buf, templates.NotFoundContext{
		Site: siteCtx,
		Meta: templates.PageMeta{Title: "404 — " + b.cfg.Site.Title},
	})
	if err != nil {
		return err
	}
	return b.writeFile("404.html", buf.Bytes())
}

func (b *Builder) emitArtifacts(idx *site.Index) error {
	jsonIndex, err := site.RenderJSONIndex(idx, b.cfg.BaseURL())
	if err != nil {
		return err
	}
	if err := b.writeFile("posts-index.json", jsonIndex); err != nil {
		return err
	}

	sitemap, err := site.RenderSitemap(idx, b.cfg.BaseURL())
	if err != nil {
		return err
	}
	if err := b.writeFile("sitemap.xml", sitemap); err != nil {
		return err
	}

	robots := site.RenderRobots(b.cfg.BaseURL())
	if b.cfg.Content.RobotsFile != "" {
		robots, err = os.ReadFile(b.cfg.Content.RobotsFile)
		if err != nil {
			return fmt.Errorf("read robots source: %w", err)
		}
	}
	return b.writeFile("robots.txt", robots)
}

// emitAssets copies the embedded default css/js, or the configured assets
// directory when one is set.
func (b *Builder) emitAssets() error {
	if b.cfg.Content.AssetsDir != "" {
		root := b.cfg.Content.AssetsDir
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			return b.writeFile(rel, data)
		})
	}

	assets, err := templates.StaticAssets()
	if err != nil {
		return err
	}
	return fs.WalkDir(assets, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(assets, path)
		if err != nil {
			return err
		}
		return b.writeFile(filepath.FromSlash(path), data)
	})
}

// writeFile writes data below the output directory, refusing any target
// that resolves outside it.
func (b *Builder) writeFile(rel string, data []byte) error {
	target := filepath.Join(b.outputDir, rel)
	if !validate.WithinBase(b.outputDir, target) {
		return fmt.Errorf("output path escapes build root: %s", rel)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o640); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}
