// Package validate guards category names, filenames, output paths and URL
// schemes before anything is written to disk or emitted into a page.
// Every predicate fails closed: ambiguity is a rejection, never an error.
package validate

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	categoryPattern = regexp.MustCompile(`^[a-z0-9\-_]+$`)
	filenamePattern = regexp.MustCompile(`^[\w\-.~]+$`)
)

// dangerousSchemes are URL schemes that must never reach a rendered href.
var dangerousSchemes = []string{"javascript:", "data:", "vbscript:", "file:"}

// Category reports whether name is a safe category directory name.
func Category(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return categoryPattern.MatchString(name)
}

// Filename reports whether name is a safe source file name: no path
// separators, no parent-directory segments.
func Filename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return false
	}
	return filenamePattern.MatchString(name)
}

// WithinBase reports whether target resolves to base itself or a strict
// descendant of base. Both paths are canonicalized before comparison so
// `..` segments cannot escape.
func WithinBase(base, target string) bool {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// SafeURL reports whether raw is free of dangerous schemes. Comparison is
// case-insensitive and tolerates leading whitespace and control characters,
// matching how browsers normalize scheme lookups.
func SafeURL(raw string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, raw)
	lowered := strings.ToLower(cleaned)
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(lowered, scheme) {
			return false
		}
	}
	return true
}
