package seo

// Grade is the letter grade attached to a score.
type Grade string

// Grades.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Status is a human-readable verdict for a content report.
type Status string

// Statuses, one per grade.
const (
	Excellent        Status = "excellent"
	Good             Status = "good"
	NeedsImprovement Status = "needs_improvement"
	Poor             Status = "poor"
)

// Breakdown holds the sub-scores of a content report.
type Breakdown struct {
	Title       int
	Description int
	Content     int
	Keywords    int
	Readability int
	Technical   int
}

// Total sums all sub-scores.
func (b Breakdown) Total() int {
	return b.Title + b.Description + b.Content + b.Keywords + b.Readability + b.Technical
}

// KeywordStat is one entry of the keyword frequency table.
type KeywordStat struct {
	Word    string
	Count   int
	Density float64 // percent of all words, two decimals
}

// Structure counts the Markdown constructs found in a body.
type Structure struct {
	Chars            int // runes, excluding spaces and newlines
	H1               int
	H2               int
	H3               int
	Lists            int
	Links            int
	Images           int
	ImagesMissingAlt int
	Sentences        int
	Paragraphs       int
	AvgSentenceLen   float64
}

// Report is the result of a content SEO analysis.
type Report struct {
	Score           int
	Grade           Grade
	Status          Status
	Breakdown       Breakdown
	Structure       Structure
	Keywords        []KeywordStat
	WordCount       int
	ReadingMinutes  int
	Issues          []string
	Recommendations []string
	// Priority lists the most impactful fixes; set only when Score < 70.
	Priority []string
}

// SlugReport is the result of a slug quality analysis.
type SlugReport struct {
	Slug            string
	Score           int
	Grade           Grade
	Issues          []string
	Recommendations []string
}

// ContentGrade maps a content score to grade and status (80/70/60 thresholds).
func ContentGrade(score int) (Grade, Status) {
	switch {
	case score >= 80:
		return GradeA, Excellent
	case score >= 70:
		return GradeB, Good
	case score >= 60:
		return GradeC, NeedsImprovement
	default:
		return GradeD, Poor
	}
}

// SlugGrade maps a slug score to a grade (90/80/70 thresholds).
func SlugGrade(score int) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 80:
		return GradeB
	case score >= 70:
		return GradeC
	default:
		return GradeD
	}
}
