package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/evjen/blogbuilder/internal/config"
	"github.com/evjen/blogbuilder/internal/frontmatter"
	"github.com/evjen/blogbuilder/internal/headings"
	"github.com/evjen/blogbuilder/internal/logfields"
	"github.com/evjen/blogbuilder/internal/markdown"
	"github.com/evjen/blogbuilder/internal/storage"
	"github.com/evjen/blogbuilder/internal/validate"
)

// Processor turns a SourceFile into a Post: frontmatter extraction,
// markdown rendering, heading annotation, derived fields.
type Processor struct {
	cfg      *config.Config
	renderer *markdown.Renderer
	cache    storage.Store // optional; nil disables fragment caching
	titler   cases.Caser
}

// NewProcessor creates a processor. cache may be nil.
func NewProcessor(cfg *config.Config, renderer *markdown.Renderer, cache storage.Store) *Processor {
	return &Processor{
		cfg:      cfg,
		renderer: renderer,
		cache:    cache,
		titler:   cases.Title(language.English),
	}
}

// renderedFragment is the cached result of the expensive pipeline steps.
type renderedFragment struct {
	HTML     string             `json:"html"`
	Headings []headings.Heading `json:"headings"`
}

// Process builds a Post from its source file. Errors are per-post
// recoverable: the caller logs them and skips the post.
func (p *Processor) Process(ctx context.Context, src SourceFile) (*Post, error) {
	raw, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("read post source: %w", err)
	}

	meta, body, err := frontmatter.Extract(raw)
	if err != nil {
		// Unstructured metadata never fails a post; build on with the body.
		slog.Warn("Frontmatter ignored", logfields.Path(src.Path), logfields.Error(err))
	}

	frag, err := p.renderBody(ctx, raw, body)
	if err != nil {
		return nil, err
	}

	post := &Post{
		Category:    src.Category,
		Slug:        src.Slug,
		Date:        src.Date,
		Title:       meta.Title,
		Subtitle:    meta.Subtitle,
		Description: meta.Description,
		Tags:        meta.Tags,
		Featured:    meta.Featured,
		ReadingTime: ReadingTime(string(body), p.cfg.Build.WordsPerMinute),
		OGTitle:     meta.OGTitle,
		HTML:        template.HTML(frag.HTML),
		Headings:    frag.Headings,
		SourcePath:  src.Path,
	}

	if post.Title == "" {
		post.Title = p.titleFromSlug(src.Slug)
	}
	if post.Description == "" {
		post.Description = AutoDescription(string(body))
	}
	if meta.OGImage != "" {
		if validate.SafeURL(meta.OGImage) {
			post.OGImage = meta.OGImage
		} else {
			slog.Warn("Dropping unsafe og_image URL", logfields.Post(src.Slug))
		}
	}

	return post, nil
}

// renderBody renders and annotates the body, consulting the fragment cache
// keyed by the hash of the raw source when one is configured.
func (p *Processor) renderBody(ctx context.Context, raw, body []byte) (renderedFragment, error) {
	hash := ""
	if p.cache != nil {
		sum := sha256.Sum256(raw)
		hash = hex.EncodeToString(sum[:])
		if obj, err := p.cache.Get(ctx, hash); err == nil {
			var frag renderedFragment
			if err := json.Unmarshal(obj.Data, &frag); err == nil {
				return frag, nil
			}
		}
	}

	rendered, err := p.renderer.Render(body)
	if err != nil {
		return renderedFragment{}, err
	}
	annotated, list, err := headings.Annotate(string(rendered))
	if err != nil {
		return renderedFragment{}, fmt.Errorf("annotate headings: %w", err)
	}
	frag := renderedFragment{HTML: annotated, Headings: list}

	if p.cache != nil {
		data, err := json.Marshal(frag)
		if err == nil {
			_, err = p.cache.Put(ctx, &storage.Object{
				Hash: hash,
				Type: storage.ObjectTypeRenderedPost,
				Data: data,
			})
		}
		if err != nil {
			slog.Warn("Fragment cache write failed", logfields.Error(err))
		}
	}
	return frag, nil
}

func (p *Processor) titleFromSlug(slug string) string {
	return p.titler.String(strings.ReplaceAll(slug, "-", " "))
}
