package seo

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/portal/internal/domain/seo"
	"github.com/kailas-cloud/portal/internal/metrics"
	"github.com/kailas-cloud/portal/internal/textproc"
)

// Thresholds used by the content analyzer.
const (
	MaxKeywords       = 20
	MaxLinks          = 10
	MaxURLLength      = 100
	PriorityThreshold = 70
)

var (
	h1Regex        = regexp.MustCompile(`(?m)^#[ \t]+\S`)
	h2Regex        = regexp.MustCompile(`(?m)^##[ \t]+\S`)
	h3Regex        = regexp.MustCompile(`(?m)^###[ \t]+\S`)
	listRegex      = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+\.)[ \t]+\S`)
	linkRegex      = regexp.MustCompile(`(?:^|[^!])\[[^\]]*\]\([^)]*\)`)
	imageRegex     = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	sentenceRegex  = regexp.MustCompile(`[。！？.!?]`)
	complexRegex   = regexp.MustCompile(`\p{Han}{4,}`)
	hanRegex       = regexp.MustCompile(`\p{Han}`)
	cleanPathRegex = regexp.MustCompile(`^[A-Za-z0-9\-_/.]*$`)
)

// Analyzer scores content and slugs for search-engine friendliness.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	words WordSplitter
}

// New creates an Analyzer.
func New(words WordSplitter) *Analyzer {
	return &Analyzer{words: words}
}

type report struct {
	issues          []string
	recommendations []string
}

func (r *report) issue(format string, args ...any) {
	r.issues = append(r.issues, fmt.Sprintf(format, args...))
}

func (r *report) recommend(format string, args ...any) {
	r.recommendations = append(r.recommendations, fmt.Sprintf(format, args...))
}

// AnalyzeContent scores a Markdown body with its title, meta description and
// optional URL. The score is always within [0,100].
func (a *Analyzer) AnalyzeContent(body, title, metaDescription, rawURL string) seo.Report {
	var r report
	var out seo.Report

	out.Structure = measure(body)
	out.Breakdown.Title = a.titleScore(title, &r)
	out.Breakdown.Description = descriptionScore(metaDescription, &r)
	out.Breakdown.Content = contentScore(body, out.Structure, &r)
	out.Keywords, out.Breakdown.Keywords = a.keywordScore(title, body, &r)
	out.Breakdown.Readability = readabilityScore(body, out.Structure, &r)
	out.Breakdown.Technical = technicalScore(rawURL, &r)

	out.Score = clamp(out.Breakdown.Total(), 0, 100)
	out.Grade, out.Status = seo.ContentGrade(out.Score)
	out.WordCount = textproc.CountWords(body)
	out.ReadingMinutes = textproc.ReadingMinutes(body)
	out.Issues = nonNil(r.issues)
	out.Recommendations = nonNil(r.recommendations)
	out.Priority = []string{}

	if out.Score < PriorityThreshold {
		if strings.TrimSpace(title) == "" {
			out.Priority = append(out.Priority, "write a compelling page title")
		}
		if strings.TrimSpace(metaDescription) == "" {
			out.Priority = append(out.Priority, "write a meta description that invites the click")
		}
		if body != "" && out.Structure.Chars < 300 {
			out.Priority = append(out.Priority, "expand the content length and depth")
		}
	}

	metrics.SEOScore.WithLabelValues("content").Observe(float64(out.Score))
	return out
}

func (a *Analyzer) titleScore(title string, r *report) int {
	title = strings.TrimSpace(title)
	if title == "" {
		r.issue("missing page title")
		r.recommend("add a descriptive page title")
		return 0
	}

	var score int
	n := utf8.RuneCountInString(title)
	switch {
	case n >= 10 && n <= 60:
		score = 15
	case n > 60 && n <= 70:
		score = 12
		r.issue("title is slightly long and may be truncated in search results")
	case n < 10:
		score = 5
		r.issue("title is too short to be descriptive")
	default:
		score = 8
		r.issue("title is too long and will be truncated in search results")
	}

	if a.meaningfulWords(title) >= 2 {
		score += 5
	} else {
		r.recommend("include more relevant keywords in the title")
	}
	return score
}

func (a *Analyzer) meaningfulWords(text string) int {
	var n int
	for _, w := range a.words.Words(text) {
		if utf8.RuneCountInString(w) > 2 && !a.words.IsStopWord(w) {
			n++
		}
	}
	return n
}

func descriptionScore(desc string, r *report) int {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		r.issue("missing meta description")
		r.recommend("add a 120-160 character meta description")
		return 0
	}

	n := utf8.RuneCountInString(desc)
	switch {
	case n >= 120 && n <= 160:
		return 15
	case n > 160 && n <= 200:
		r.issue("meta description is slightly long and may be truncated")
		return 12
	case n < 120:
		r.issue("meta description is too short, aim for 120-160 characters")
		return 8
	default:
		r.issue("meta description is too long and will be truncated")
		return 5
	}
}

// measure counts the structural elements of a Markdown body.
func measure(body string) seo.Structure {
	s := seo.Structure{
		Chars: utf8.RuneCountInString(strings.NewReplacer(" ", "", "\n", "").Replace(body)),
		H1:    len(h1Regex.FindAllStringIndex(body, -1)),
		H2:    len(h2Regex.FindAllStringIndex(body, -1)),
		H3:    len(h3Regex.FindAllStringIndex(body, -1)),
		Lists: len(listRegex.FindAllStringIndex(body, -1)),
		Links: len(linkRegex.FindAllStringIndex(body, -1)),
	}

	for _, m := range imageRegex.FindAllStringSubmatch(body, -1) {
		s.Images++
		if strings.TrimSpace(m[1]) == "" {
			s.ImagesMissingAlt++
		}
	}

	var total int
	for _, part := range sentenceRegex.Split(body, -1) {
		if part = strings.TrimSpace(part); part != "" {
			s.Sentences++
			total += utf8.RuneCountInString(part)
		}
	}
	if s.Sentences > 0 {
		s.AvgSentenceLen = math.Round(float64(total)/float64(s.Sentences)*10) / 10
	}

	for _, p := range strings.Split(body, "\n\n") {
		if strings.TrimSpace(p) != "" {
			s.Paragraphs++
		}
	}
	return s
}

func contentScore(body string, s seo.Structure, r *report) int {
	if body == "" {
		r.issue("content is empty")
		return 0
	}

	var score int
	switch {
	case s.Chars >= 500:
		score += 10
	case s.Chars >= 300:
		score += 8
	default:
		score += 5
		r.issue("content is too short, aim for at least 300 characters")
	}

	if s.H1 > 0 {
		score += 3
	} else {
		r.issue("missing H1 heading, add a main title")
	}
	if s.H2 > 0 {
		score += 2
	} else {
		r.recommend("add H2 subheadings to structure the content")
	}
	if s.Lists > 0 {
		score += 2
	} else {
		r.recommend("use lists to improve readability")
	}
	if s.Links > 0 {
		score += 2
		if s.Links > MaxLinks {
			r.issue("too many links (%d) may hurt the reading experience", s.Links)
		}
	} else {
		r.recommend("add relevant internal or external links")
	}

	if s.Images > 0 {
		score += 3
		if s.ImagesMissingAlt == 0 {
			score += 2
		} else {
			r.issue("%d image(s) missing alt text", s.ImagesMissingAlt)
		}
	} else {
		r.recommend("add relevant images to enrich the content")
	}
	return score
}

func (a *Analyzer) keywordScore(title, body string, r *report) ([]seo.KeywordStat, int) {
	words := a.words.Words(title + " " + body)
	if len(words) == 0 {
		r.issue("no clear keyword pattern detected")
		return []seo.KeywordStat{}, 0
	}

	counts := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	for _, w := range words {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > MaxKeywords {
		order = order[:MaxKeywords]
	}

	stats := make([]seo.KeywordStat, 0, len(order))
	var maxDensity float64
	for _, w := range order {
		if utf8.RuneCountInString(w) <= 2 || a.words.IsStopWord(w) {
			continue
		}
		d := math.Round(float64(counts[w])/float64(len(words))*100*100) / 100
		stats = append(stats, seo.KeywordStat{Word: w, Count: counts[w], Density: d})
		maxDensity = math.Max(maxDensity, d)
	}

	if len(stats) == 0 {
		r.issue("no clear keyword pattern detected")
		return stats, 0
	}

	switch {
	case maxDensity > 5:
		r.issue("keyword density too high (%.2f%%), may be seen as keyword stuffing", maxDensity)
		return stats, 10
	case maxDensity <= 0.5:
		r.recommend("use the main keywords a little more often")
		return stats, 10
	default:
		return stats, 20
	}
}

func readabilityScore(body string, s seo.Structure, r *report) int {
	if body == "" || s.Sentences == 0 {
		return 0
	}

	var score int
	switch {
	case s.AvgSentenceLen <= 20:
		score += 5
	case s.AvgSentenceLen <= 30:
		score += 3
	default:
		r.issue("average sentence is too long, prefer shorter sentences")
	}

	if s.Paragraphs >= 3 {
		score += 3
	} else {
		r.recommend("split the content into more paragraphs")
	}

	if han := len(hanRegex.FindAllStringIndex(body, -1)); han > 0 {
		complexRuns := len(complexRegex.FindAllStringIndex(body, -1))
		if float64(complexRuns)/float64(han) < 0.1 {
			score += 2
		} else {
			r.recommend("consider simpler vocabulary")
		}
	}
	return score
}

func technicalScore(rawURL string, r *report) int {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return 0
	}
	if len(rawURL) > MaxURLLength {
		r.issue("URL is too long, shorten it below %d characters", MaxURLLength)
	}
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	if !cleanPathRegex.MatchString(path) {
		r.recommend("use a cleaner URL made of letters, digits and hyphens")
	}
	return 10
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
