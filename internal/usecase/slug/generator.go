// Package slug builds URL slugs from titles and keeps them unique.
package slug

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kailas-cloud/portal/internal/domain"
)

// Generation limits.
const (
	DefaultMaxLength  = 60
	ShortMaxLength    = 30
	CompactMaxLength  = 40
	MinLength         = 3
	MaxUniqueAttempts = 1000

	// boundaryRatio is how far into the cut a hyphen must sit for the cut
	// to move back to it.
	boundaryRatio = 0.7
)

var (
	hanRunRegex   = regexp.MustCompile(`\p{Han}+`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	disallowedRe  = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRunRe   = regexp.MustCompile(`-+`)
	validSlugRe   = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	latinMappings = compileMappings()
)

type compiledMapping struct {
	re *regexp.Regexp // nil for Han entries, which match as substrings
	mapping
}

func compileMappings() []compiledMapping {
	out := make([]compiledMapping, 0, len(commonMappings))
	for _, m := range commonMappings {
		cm := compiledMapping{mapping: m}
		if isASCII(m.from) {
			cm.re = regexp.MustCompile(`\b` + regexp.QuoteMeta(m.from) + `\b`)
		}
		out = append(out, cm)
	}
	return out
}

// Options controls a single generation.
type Options struct {
	MaxLength   int
	UsePinyin   bool
	IncludeDate bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{MaxLength: DefaultMaxLength, UsePinyin: true}
}

// Generator turns titles into slugs. It is safe for concurrent use.
type Generator struct {
	checker Checker
	now     func() time.Time
	pinyin  pinyin.Args
}

// Option configures a Generator.
type Option func(*Generator)

// WithChecker sets the store consulted by Unique.
func WithChecker(c Checker) Option {
	return func(g *Generator) { g.checker = c }
}

// WithClock overrides the clock used for date prefixes and fallback slugs.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		now:    time.Now,
		pinyin: pinyin.NewArgs(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate builds a slug from title. The result is never empty and always
// made of lowercase letters and digits joined by single hyphens.
func (g *Generator) Generate(title string, opts Options) string {
	return g.generate(title, opts, stopWords)
}

func (g *Generator) generate(title string, opts Options, stop map[string]struct{}) string {
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultMaxLength
	}
	s := strings.ToLower(strings.TrimSpace(title))
	if s == "" {
		return g.fallback()
	}

	s = applyMappings(whitespaceRe.ReplaceAllString(s, "-"))
	if opts.UsePinyin {
		s = g.transliterate(s)
	}
	s = foldMarks(s)
	s = punctuation.Replace(s)
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = dropStopWords(s, stop)
	s = normalize(s)
	s = truncate(s, opts.MaxLength)

	if opts.IncludeDate && s != "" {
		s = g.now().Format("20060102") + "-" + s
	}
	return g.validate(s)
}

func applyMappings(s string) string {
	for _, m := range latinMappings {
		if m.re != nil {
			s = m.re.ReplaceAllString(s, m.to)
			continue
		}
		s = strings.ReplaceAll(s, m.from, "-"+m.to+"-")
	}
	return s
}

func (g *Generator) transliterate(s string) string {
	return hanRunRegex.ReplaceAllStringFunc(s, func(run string) string {
		return "-" + strings.Join(pinyin.LazyPinyin(run, g.pinyin), "-") + "-"
	})
}

// foldMarks applies compatibility decomposition and drops combining marks,
// so "café" becomes "cafe".
func foldMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func dropStopWords(s string, stop map[string]struct{}) string {
	parts := strings.Split(s, "-")
	kept := parts[:0]
	for _, p := range parts {
		if utf8.RuneCountInString(p) <= 1 {
			continue
		}
		if _, ok := stop[p]; ok {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "-")
}

func normalize(s string) string {
	s = disallowedRe.ReplaceAllString(strings.ToLower(s), "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// truncate cuts s to n bytes, backing up to the last hyphen when it lies
// past 70% of n.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	if i := strings.LastIndex(cut, "-"); float64(i) > float64(n)*boundaryRatio {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, "-")
}

func (g *Generator) validate(s string) string {
	if s == "" {
		return g.fallback()
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "post-" + s
	}
	if len(s) < MinLength {
		s += "-post"
	}
	s = normalize(s)
	if !validSlugRe.MatchString(s) {
		return g.fallback()
	}
	return s
}

func (g *Generator) fallback() string {
	return "post-" + g.now().Format("20060102150405")
}

// Unique returns base, or base-1, base-2, ... when base is already taken by
// an item other than excludeID. Without a checker base is returned as is.
func (g *Generator) Unique(ctx context.Context, base string, excludeID int64) (string, error) {
	if g.checker == nil {
		return base, nil
	}
	candidate := base
	for i := 1; i <= MaxUniqueAttempts; i++ {
		taken, err := g.checker.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("slug %q: %w", base, domain.ErrSlugTaken)
}

// Entry pairs a title with its generated slug.
type Entry struct {
	Title string
	Slug  string
}

// Batch generates slugs for titles, unique within the batch, in input order.
func (g *Generator) Batch(titles []string, opts Options) []Entry {
	used := make(map[string]struct{}, len(titles))
	out := make([]Entry, 0, len(titles))
	for _, t := range titles {
		base := g.Generate(t, opts)
		s := base
		for i := 1; ; i++ {
			if _, ok := used[s]; !ok {
				break
			}
			s = fmt.Sprintf("%s-%d", base, i)
		}
		used[s] = struct{}{}
		out = append(out, Entry{Title: t, Slug: s})
	}
	return out
}

// VariationKind names a slug variation.
type VariationKind string

// Variation kinds, in the order Variations returns them.
const (
	Standard VariationKind = "standard"
	Short    VariationKind = "short"
	Dated    VariationKind = "dated"
	Latin    VariationKind = "latin"
	Compact  VariationKind = "compact"
)

// Variation is one alternative slug for a title.
type Variation struct {
	Kind VariationKind
	Slug string
}

// Variations suggests up to count alternative slugs for title. Variations
// equal to the standard slug are skipped, except the dated one.
func (g *Generator) Variations(title string, count int) []Variation {
	std := g.Generate(title, DefaultOptions())
	out := []Variation{{Kind: Standard, Slug: std}}

	add := func(kind VariationKind, s string) {
		if s != std {
			out = append(out, Variation{Kind: kind, Slug: s})
		}
	}

	short := DefaultOptions()
	short.MaxLength = ShortMaxLength
	add(Short, g.Generate(title, short))

	dated := DefaultOptions()
	dated.IncludeDate = true
	out = append(out, Variation{Kind: Dated, Slug: g.Generate(title, dated)})

	latin := DefaultOptions()
	latin.UsePinyin = false
	add(Latin, g.Generate(title, latin))

	compact := DefaultOptions()
	compact.MaxLength = CompactMaxLength
	add(Compact, g.generate(title, compact, compactStopWords))

	if count > 0 && len(out) > count {
		out = out[:count]
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
