package textproc

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-ego/gse"
	"github.com/go-ego/gse/hmm/idf"
)

// Weighted is a keyword with its salience weight.
type Weighted struct {
	Word   string
	Weight float64
}

// idfMedianToken seeds the IDF median used for words missing from the
// table. Loading the table from a string leaves the median at zero, and
// AddToken is the only way to set it. The cutter never yields this token.
const idfMedianToken = "\x00idf-median"

// TFIDF weighs the words of a text by term frequency times inverse
// document frequency over the embedded Chinese corpus statistics.
type TFIDF struct {
	te idf.TagExtracter
}

// NewTFIDF builds an extracter that cuts text with seg.
func NewTFIDF(seg *gse.Segmenter) (*TFIDF, error) {
	median, err := idfMedian(gse.ZhIdf)
	if err != nil {
		return nil, err
	}

	t := &TFIDF{}
	t.te.WithGse(*seg)
	if err := t.te.LoadIdfStr(gse.ZhIdf); err != nil {
		return nil, fmt.Errorf("load idf table: %w", err)
	}
	if err := t.te.Idf.AddToken(idfMedianToken, median); err != nil {
		return nil, fmt.Errorf("seed idf median: %w", err)
	}
	return t, nil
}

// Extract returns every candidate word of text, heaviest first. Equal
// weights are ordered by word.
func (t *TFIDF) Extract(text string) []Weighted {
	tags := t.te.ExtractTags(text, math.MaxInt)
	out := make([]Weighted, 0, len(tags))
	for _, s := range tags {
		out = append(out, Weighted{Word: s.Text, Weight: s.Weight})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// idfMedian returns the median IDF of a "word idf" per line table.
func idfMedian(table string) (float64, error) {
	vals := make([]float64, 0, 1<<16)
	for _, line := range strings.Split(table, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return 0, errors.New("empty idf table")
	}
	sort.Float64s(vals)
	return vals[len(vals)/2], nil
}
