package sortby

import "testing"

func TestIsValid(t *testing.T) {
	for _, s := range []SortBy{Relevance, Date, Views, Likes} {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []SortBy{"", "score", "Relevance"} {
		if s.IsValid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}
