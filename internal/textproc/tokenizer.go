// Package textproc turns mixed Chinese, Japanese and Latin text into
// lower-cased keywords.
package textproc

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tokenizer extracts keywords from mixed-script text. It is immutable after
// construction and safe for concurrent use.
type Tokenizer struct {
	latin Segmenter
	han   Segmenter
	kana  Segmenter
	tfidf *TFIDF
	stop  map[string]struct{}
}

type options struct {
	han       Segmenter
	kana      Segmenter
	tfidf     *TFIDF
	japanese  bool
	extraStop []string
}

// Option configures a Tokenizer.
type Option func(*options)

// WithHanSegmenter replaces the dictionary segmenter used for Chinese runs.
func WithHanSegmenter(s Segmenter) Option {
	return func(o *options) { o.han = s }
}

// WithKanaSegmenter sets the segmenter used for runs containing kana.
func WithKanaSegmenter(s Segmenter) Option {
	return func(o *options) { o.kana = s }
}

// WithTFIDF sets the extracter used to rank keywords by salience.
func WithTFIDF(t *TFIDF) Option {
	return func(o *options) { o.tfidf = t }
}

// WithJapanese enables the built-in Japanese segmenter for runs containing kana.
func WithJapanese(enabled bool) Option {
	return func(o *options) { o.japanese = enabled }
}

// WithExtraStopWords adds stop-words on top of the built-in list.
func WithExtraStopWords(words ...string) Option {
	return func(o *options) { o.extraStop = append(o.extraStop, words...) }
}

// New builds a Tokenizer. Dictionaries are loaded once here. With the
// built-in Han segmenter a TF-IDF extracter is loaded too; a custom Han
// segmenter without WithTFIDF ranks keywords by frequency instead.
func New(opts ...Option) (*Tokenizer, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	if o.han == nil {
		h, err := NewHanSegmenter()
		if err != nil {
			return nil, err
		}
		o.han = h
		if o.tfidf == nil {
			t, err := NewTFIDF(h.seg)
			if err != nil {
				return nil, err
			}
			o.tfidf = t
		}
	}
	if o.kana == nil && o.japanese {
		k, err := NewKanaSegmenter()
		if err != nil {
			return nil, fmt.Errorf("japanese segmenter: %w", err)
		}
		o.kana = k
	}

	return &Tokenizer{
		latin: LatinSegmenter{},
		han:   o.han,
		kana:  o.kana,
		tfidf: o.tfidf,
		stop:  stopSet(o.extraStop),
	}, nil
}

// ExtractKeywords returns the distinct keywords of text, sorted.
// Empty or punctuation-only text yields an empty slice.
func (t *Tokenizer) ExtractKeywords(text string) []string {
	words := t.Words(text)
	if len(words) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Words returns every kept token of text in order, duplicates included.
func (t *Tokenizer) Words(text string) []string {
	var out []string
	for _, r := range splitRuns(text) {
		for _, tok := range t.segmenterFor(r).Segment(r.text) {
			if w, ok := t.keep(tok); ok {
				out = append(out, w)
			}
		}
	}
	return out
}

// TopKeywords returns the words of Salient(text, n).
func (t *Tokenizer) TopKeywords(text string, n int) []string {
	ranked := t.Salient(text, n)
	if ranked == nil {
		return nil
	}
	out := make([]string, len(ranked))
	for i, w := range ranked {
		out[i] = w.Word
	}
	return out
}

// Salient returns up to n keywords of text, most salient first. Weights are
// TF-IDF when an extracter is configured, otherwise relative frequency with
// ties broken by first occurrence.
func (t *Tokenizer) Salient(text string, n int) []Weighted {
	if n <= 0 {
		return nil
	}
	if t.tfidf == nil {
		return t.byFrequency(text, n)
	}

	out := make([]Weighted, 0, n)
	seen := make(map[string]struct{}, n)
	for _, c := range t.tfidf.Extract(lower(text)) {
		w, ok := t.keep(c.Word)
		if !ok {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, Weighted{Word: w, Weight: c.Weight})
		if len(out) == n {
			break
		}
	}
	return out
}

func (t *Tokenizer) byFrequency(text string, n int) []Weighted {
	words := t.Words(text)
	counts := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	for _, w := range words {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	out := make([]Weighted, len(order))
	for i, w := range order {
		out[i] = Weighted{Word: w, Weight: float64(counts[w]) / float64(len(words))}
	}
	return out
}

// IsStopWord reports whether w (any case) is a stop-word.
func (t *Tokenizer) IsStopWord(w string) bool {
	_, ok := t.stop[lower(w)]
	return ok
}

func (t *Tokenizer) keep(tok string) (string, bool) {
	tok = strings.TrimFunc(tok, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if utf8.RuneCountInString(tok) <= 1 {
		return "", false
	}
	w := lower(tok)
	if _, stop := t.stop[w]; stop {
		return "", false
	}
	return w, true
}

func (t *Tokenizer) segmenterFor(r run) Segmenter {
	switch {
	case r.kind == runCJK && r.hasKana && t.kana != nil:
		return t.kana
	case r.kind == runCJK:
		return t.han
	default:
		return t.latin
	}
}

// lower folds case without sharing a Caser, which is not goroutine-safe.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

type runKind int

const (
	runOther runKind = iota
	runCJK
)

type run struct {
	text    string
	kind    runKind
	hasKana bool
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) || isKana(r)
}

func isKana(r rune) bool {
	return unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || r == 'ー'
}

// splitRuns cuts text into maximal CJK and non-CJK runs.
func splitRuns(text string) []run {
	var runs []run
	start := 0
	kind := runOther
	hasKana := false
	for i, r := range text {
		k := runOther
		if isCJK(r) {
			k = runCJK
		}
		if i > start && k != kind {
			runs = append(runs, run{text: text[start:i], kind: kind, hasKana: hasKana})
			start = i
			hasKana = false
		}
		kind = k
		if isKana(r) {
			hasKana = true
		}
	}
	if start < len(text) {
		runs = append(runs, run{text: text[start:], kind: kind, hasKana: hasKana})
	}
	return runs
}
