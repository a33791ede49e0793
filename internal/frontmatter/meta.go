package frontmatter

import (
	"fmt"
	"strconv"
	"strings"
)

// Meta holds the recognized frontmatter fields of a post.
//
// Unknown fields are ignored. Missing or unparseable frontmatter yields a
// zero-value Meta; it never fails a post.
type Meta struct {
	Title       string
	Subtitle    string
	Description string
	Tags        []string
	Featured    bool
	OGImage     string
	OGTitle     string
}

// Extract splits a document and decodes its frontmatter into Meta.
//
// The returned error is advisory: callers log it and continue with the
// zero-value Meta and the best-effort body (the full document when the
// frontmatter block is malformed).
func Extract(content []byte) (Meta, []byte, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return Meta{}, content, fmt.Errorf("split frontmatter: %w", err)
	}
	if !had {
		return Meta{}, body, nil
	}

	fields, err := ParseYAML(fm)
	if err != nil {
		return Meta{}, body, fmt.Errorf("parse frontmatter: %w", err)
	}
	return decodeMeta(fields), body, nil
}

func decodeMeta(fields map[string]any) Meta {
	return Meta{
		Title:       stringField(fields, "title"),
		Subtitle:    stringField(fields, "subtitle"),
		Description: stringField(fields, "description"),
		Tags:        stringsField(fields, "tags"),
		Featured:    boolField(fields, "featured"),
		OGImage:     stringField(fields, "og_image"),
		OGTitle:     stringField(fields, "og_title"),
	}
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case int, int64, float64, bool:
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}

// stringsField tolerates both a YAML sequence and a comma separated scalar.
func stringsField(fields map[string]any, key string) []string {
	switch v := fields[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case string:
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

func boolField(fields map[string]any, key string) bool {
	switch v := fields[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}
