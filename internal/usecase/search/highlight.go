package search

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Snippet limits.
const (
	SnippetMaxRunes = 200
	snippetEllipsis = "..."
	markOpen        = "<mark>"
	markClose       = "</mark>"
)

var sentenceSplitRegex = regexp.MustCompile(`[。！？.!?]`)

// highlighter wraps keyword occurrences in <mark> on HTML-free, escaped text.
type highlighter struct {
	policy *bluemonday.Policy
}

func newHighlighter() highlighter {
	return highlighter{policy: bluemonday.StrictPolicy()}
}

// plain strips all markup and returns unescaped text.
func (h highlighter) plain(text string) string {
	return html.UnescapeString(h.policy.Sanitize(text))
}

// mark returns escaped text with every case-insensitive keyword occurrence
// wrapped once. Longer keywords win over their own substrings.
func (h highlighter) mark(text string, keywords []string) string {
	text = h.plain(text)
	re := keywordRegex(keywords)
	if re == nil || text == "" {
		return html.EscapeString(text)
	}

	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:loc[0]]))
		b.WriteString(markOpen)
		b.WriteString(html.EscapeString(text[loc[0]:loc[1]]))
		b.WriteString(markClose)
		last = loc[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}

// snippet picks the body sentence containing the most distinct keywords,
// truncates it and marks it. With no matching sentence the first sentence
// is returned unmarked.
func (h highlighter) snippet(body string, keywords []string) string {
	text := h.plain(body)
	best, bestCount := "", 0
	first := ""
	for _, raw := range sentenceSplitRegex.Split(text, -1) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		if first == "" {
			first = sentence
		}
		if n := countMatches(strings.ToLower(sentence), keywords); n > bestCount {
			best, bestCount = sentence, n
		}
	}
	if bestCount == 0 {
		return html.EscapeString(truncateRunes(first, SnippetMaxRunes))
	}
	return h.mark(truncateRunes(best, SnippetMaxRunes), keywords)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + snippetEllipsis
}

// keywordRegex builds one alternation, longest keyword first, so a single
// pass never nests marks.
func keywordRegex(keywords []string) *regexp.Regexp {
	kws := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			kws = append(kws, kw)
		}
	}
	if len(kws) == 0 {
		return nil
	}
	sort.SliceStable(kws, func(i, j int) bool {
		return utf8.RuneCountInString(kws[i]) > utf8.RuneCountInString(kws[j])
	})
	quoted := make([]string, len(kws))
	for i, kw := range kws {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
}
