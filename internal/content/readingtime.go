package content

import (
	"fmt"
	"strings"
)

// ReadingTime estimates reading time from the Markdown body: whitespace
// delimited word count divided by wordsPerMinute, rounded up, never below
// one minute.
func ReadingTime(body string, wordsPerMinute int) string {
	words := len(strings.Fields(body))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}
