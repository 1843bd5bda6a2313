package sortby

// SortBy is the search result ordering.
type SortBy string

// Sort order constants.
const (
	// Relevance orders by computed relevance score.
	Relevance SortBy = "relevance"
	// Date orders by creation time, newest first.
	Date  SortBy = "date"
	Views SortBy = "views"
	Likes SortBy = "likes"
)

// IsValid checks if the order is one of the supported values.
func (s SortBy) IsValid() bool {
	return s == Relevance || s == Date || s == Views || s == Likes
}
