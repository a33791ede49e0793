package content

import (
	"regexp"
	"strings"
)

// descriptionLimit is the maximum auto-description length in characters.
const descriptionLimit = 500

var (
	linkPattern  = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	blankLines   = regexp.MustCompile(`\n\s*\n`)
	markerChars  = strings.NewReplacer("**", "", "__", "", "*", "", "`", "", "~~", "")
	leadingUnder = regexp.MustCompile(`(^|\s)_([^_]+)_(\s|$|[.,;:!?])`)
)

// AutoDescription derives a description from the Markdown body when the
// frontmatter does not supply one: the first paragraph that is not a
// heading, with link syntax replaced by the display text and emphasis/code
// markers stripped, cut at 500 characters.
func AutoDescription(body string) string {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	for _, block := range blankLines.Split(normalized, -1) {
		block = strings.TrimSpace(block)
		if block == "" || strings.HasPrefix(block, "#") {
			continue
		}
		return truncate(cleanInline(block), descriptionLimit)
	}
	return ""
}

func cleanInline(s string) string {
	s = linkPattern.ReplaceAllString(s, "$1")
	s = leadingUnder.ReplaceAllString(s, "$1$2$3")
	s = markerChars.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// truncate cuts at the character limit. The cut is rune-aligned so a
// multibyte character is never split; no word-boundary adjustment is made.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
