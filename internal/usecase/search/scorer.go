package search

import (
	"math"
	"strings"

	"github.com/kailas-cloud/portal/internal/domain/content"
)

// Field weights. A field contributes matches * weight * fieldScale.
const (
	TitleWeight   = 0.4
	SummaryWeight = 0.3
	BodyWeight    = 0.2
	TagWeight     = 0.1
	fieldScale    = 10
)

// Whole-query bonuses, mutually exclusive in this order.
const (
	TitlePhraseBonus   = 20
	SummaryPhraseBonus = 15
	BodyPhraseBonus    = 10
)

// Item-level boosts.
const (
	FeaturedBonus       = 5
	PopularityThreshold = 100 // views above this earn a boost
	PopularityDivisor   = 100
	PopularityCap       = 10
)

// Weights holds every tunable number of the relevance formula.
type Weights struct {
	Title   float64
	Summary float64
	Body    float64
	Tags    float64

	TitlePhrase   float64
	SummaryPhrase float64
	BodyPhrase    float64

	Featured            float64
	PopularityThreshold float64
	PopularityDivisor   float64
	PopularityCap       float64
}

// DefaultWeights returns the production relevance weights.
func DefaultWeights() Weights {
	return Weights{
		Title:               TitleWeight,
		Summary:             SummaryWeight,
		Body:                BodyWeight,
		Tags:                TagWeight,
		TitlePhrase:         TitlePhraseBonus,
		SummaryPhrase:       SummaryPhraseBonus,
		BodyPhrase:          BodyPhraseBonus,
		Featured:            FeaturedBonus,
		PopularityThreshold: PopularityThreshold,
		PopularityDivisor:   PopularityDivisor,
		PopularityCap:       PopularityCap,
	}
}

// Scorer computes the additive relevance score of an item. Immutable.
type Scorer struct {
	w Weights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(w Weights) Scorer {
	return Scorer{w: w}
}

// Score returns the relevance of item for the keywords and raw query,
// rounded to two decimals.
func (s Scorer) Score(item content.Item, keywords []string, rawQuery string) float64 {
	title := strings.ToLower(item.Title())
	summary := strings.ToLower(item.Summary())
	body := strings.ToLower(item.Body())
	tags := make([]string, len(item.Tags()))
	for i, t := range item.Tags() {
		tags[i] = strings.ToLower(t)
	}

	score := float64(countMatches(title, keywords))*s.w.Title*fieldScale +
		float64(countMatches(summary, keywords))*s.w.Summary*fieldScale +
		float64(countMatches(body, keywords))*s.w.Body*fieldScale +
		float64(countTagMatches(tags, keywords))*s.w.Tags*fieldScale

	if q := strings.ToLower(strings.TrimSpace(rawQuery)); q != "" {
		switch {
		case strings.Contains(title, q):
			score += s.w.TitlePhrase
		case strings.Contains(summary, q):
			score += s.w.SummaryPhrase
		case strings.Contains(body, q):
			score += s.w.BodyPhrase
		}
	}

	if item.Featured() {
		score += s.w.Featured
	}

	if views := float64(item.ViewCount()); views > s.w.PopularityThreshold && s.w.PopularityDivisor > 0 {
		score += math.Min(views/s.w.PopularityDivisor, s.w.PopularityCap)
	}

	return math.Round(score*100) / 100
}

// countMatches counts distinct keywords that are substrings of text.
func countMatches(text string, keywords []string) int {
	if text == "" {
		return 0
	}
	n := 0
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// countTagMatches counts keywords that are substrings of any tag name.
func countTagMatches(tags, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		for _, t := range tags {
			if strings.Contains(t, kw) {
				n++
				break
			}
		}
	}
	return n
}
