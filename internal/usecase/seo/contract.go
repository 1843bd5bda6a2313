package seo

// WordSplitter splits text into kept, lower-cased tokens.
type WordSplitter interface {
	Words(text string) []string
	IsStopWord(w string) bool
}
