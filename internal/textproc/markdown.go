package textproc

import (
	"math"
	"regexp"
	"strings"
)

// WordsPerMinute is the blended Chinese/English reading speed.
const WordsPerMinute = 225

var (
	markdownMarkRegex = regexp.MustCompile("[#*`\\[\\]()_~]")
	newlinesRegex     = regexp.MustCompile(`\n+`)
	spacesRegex       = regexp.MustCompile(`[ \t]+`)
	hanCharRegex      = regexp.MustCompile(`\p{Han}`)
	englishWordRegex  = regexp.MustCompile(`[a-zA-Z]+`)
)

// PlainText strips Markdown emphasis, heading, link and code marks and folds
// newlines into spaces.
func PlainText(markdown string) string {
	text := markdownMarkRegex.ReplaceAllString(markdown, "")
	text = newlinesRegex.ReplaceAllString(text, " ")
	text = spacesRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ExtractSummary returns the first n runes of the plain body, cut back to the
// last space when that keeps at least 80% of the text, with "..." appended.
func ExtractSummary(markdown string, n int) string {
	text := PlainText(markdown)
	runes := []rune(text)
	if n <= 0 || len(runes) <= n {
		return text
	}
	truncated := string(runes[:n])
	if idx := strings.LastIndex(truncated, " "); idx > 0 && len([]rune(truncated[:idx])) > n*8/10 {
		truncated = truncated[:idx]
	}
	return truncated + "..."
}

// CountWords counts Han characters plus English words.
func CountWords(markdown string) int {
	if markdown == "" {
		return 0
	}
	text := PlainText(markdown)
	return len(hanCharRegex.FindAllStringIndex(text, -1)) + len(englishWordRegex.FindAllStringIndex(text, -1))
}

// ReadingMinutes estimates reading time, at least one minute.
func ReadingMinutes(markdown string) int {
	m := int(math.Round(float64(CountWords(markdown)) / WordsPerMinute))
	if m < 1 {
		return 1
	}
	return m
}
