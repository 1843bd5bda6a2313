package related

import (
	"sort"

	"github.com/kailas-cloud/portal/internal/domain/content"
)

// Mixed-mode signal weights. Summed per item, never maxed.
const (
	TagSignalWeight      = 10
	CategorySignalWeight = 5
	KeywordSignalWeight  = 3
)

// signal is one recommendation list with the weight each of its items earns.
type signal struct {
	items  []content.Item
	weight float64
}

// blend merges signals additively: score(d) = sum of weights of the signals
// where d appears. Equal totals keep first-seen order.
func blend(limit int, signals ...signal) []content.Item {
	type scored struct {
		item  content.Item
		score float64
	}

	merged := make(map[int64]*scored)
	order := make([]int64, 0)

	for _, sig := range signals {
		for _, it := range sig.items {
			if existing, ok := merged[it.ID()]; ok {
				existing.score += sig.weight
				continue
			}
			merged[it.ID()] = &scored{item: it, score: sig.weight}
			order = append(order, it.ID())
		}
	}

	ranked := make([]*scored, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, merged[id])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]content.Item, len(ranked))
	for i, s := range ranked {
		out[i] = s.item
	}
	return out
}
