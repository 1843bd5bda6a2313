package textproc

import (
	"fmt"
	"regexp"

	"github.com/go-ego/gse"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Segmenter splits a single-script run of text into words.
// Implementations must be safe for concurrent use.
type Segmenter interface {
	Segment(text string) []string
}

// SegmenterFunc adapts a function to Segmenter.
type SegmenterFunc func(text string) []string

// Segment calls f(text).
func (f SegmenterFunc) Segment(text string) []string { return f(text) }

var latinWordRegex = regexp.MustCompile(`[\p{L}\p{N}]+`)

// LatinSegmenter splits on anything that is not a letter or digit.
type LatinSegmenter struct{}

// Segment returns maximal letter/digit runs.
func (LatinSegmenter) Segment(text string) []string {
	return latinWordRegex.FindAllString(text, -1)
}

// HanSegmenter cuts Chinese runs with a dictionary segmenter plus HMM for
// unknown words.
type HanSegmenter struct {
	seg *gse.Segmenter
}

// NewHanSegmenter loads the embedded simplified Chinese dictionary.
func NewHanSegmenter() (*HanSegmenter, error) {
	seg := &gse.Segmenter{SkipLog: true}
	if err := seg.LoadDictEmbed(); err != nil {
		return nil, fmt.Errorf("load han dictionary: %w", err)
	}
	return &HanSegmenter{seg: seg}, nil
}

// Segment cuts text into dictionary words.
func (h *HanSegmenter) Segment(text string) []string {
	return h.seg.Cut(text, true)
}

// KanaSegmenter splits Japanese runs (kana mixed with kanji) into words.
type KanaSegmenter struct {
	t *tokenizer.Tokenizer
}

// NewKanaSegmenter builds a morphological tokenizer over the IPA dictionary.
func NewKanaSegmenter() (*KanaSegmenter, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init kana tokenizer: %w", err)
	}
	return &KanaSegmenter{t: t}, nil
}

// Segment returns surface forms in order.
func (k *KanaSegmenter) Segment(text string) []string {
	return k.t.Wakati(text)
}
