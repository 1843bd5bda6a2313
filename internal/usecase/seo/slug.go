package seo

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/portal/internal/domain/seo"
	"github.com/kailas-cloud/portal/internal/metrics"
)

// Slug quality limits.
const (
	MinSlugLength  = 3
	MaxSlugLength  = 60
	MaxSlugHyphens = 5
	MinSlugWordLen = 3
)

var slugCharsRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// AnalyzeSlug scores a URL slug within [0,100].
func (a *Analyzer) AnalyzeSlug(slug string) seo.SlugReport {
	var r report
	var score int

	n := len(slug)
	switch {
	case n >= MinSlugLength && n <= MaxSlugLength:
		score += 25
	case n > MaxSlugLength:
		score += 15
		r.issue("slug is too long (%d characters), keep it within %d", n, MaxSlugLength)
	default:
		score += 10
		r.issue("slug is too short to be descriptive")
	}

	if slugCharsRegex.MatchString(slug) {
		score += 20
	} else {
		r.issue("slug contains discouraged characters, use lowercase letters, digits and hyphens only")
	}

	if hyphens := strings.Count(slug, "-"); hyphens <= MaxSlugHyphens {
		score += 20
	} else {
		score += 10
		r.issue("too many hyphens (%d), keep it within %d", hyphens, MaxSlugHyphens)
	}

	words := strings.Split(slug, "-")
	if len(words) >= 2 {
		score += 20
		if allLonger(words, MinSlugWordLen) {
			score += 15
		} else {
			score += 10
			r.recommend("avoid very short words to improve readability")
		}
	} else {
		score += 10
		r.recommend("use several words to make the URL more descriptive")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		r.issue("slug should not start or end with a hyphen")
	}
	if strings.Contains(slug, "--") {
		r.issue("avoid consecutive hyphens")
	}

	score = clamp(score, 0, 100)
	metrics.SEOScore.WithLabelValues("slug").Observe(float64(score))

	return seo.SlugReport{
		Slug:            slug,
		Score:           score,
		Grade:           seo.SlugGrade(score),
		Issues:          nonNil(r.issues),
		Recommendations: nonNil(r.recommendations),
	}
}

func allLonger(words []string, n int) bool {
	for _, w := range words {
		if len(w) < n {
			return false
		}
	}
	return true
}
