package textproc

// stopWords are common function words in Chinese and English that carry no
// search signal.
var stopWords = []string{
	"的", "了", "是", "在", "我", "有", "和", "就", "不", "人",
	"都", "一", "一个", "上", "也", "很", "到", "说", "要", "去",
	"你", "会", "着", "没有", "看", "好", "自己", "这", "那", "这个",
	"那个", "什么", "怎么",
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
	"for", "of", "with", "by", "is", "are",
}

// StopWords returns a fresh copy of the built-in stop-word list.
func StopWords() []string {
	out := make([]string, len(stopWords))
	copy(out, stopWords)
	return out
}

func stopSet(extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(stopWords)+len(extra))
	for _, w := range stopWords {
		set[w] = struct{}{}
	}
	for _, w := range extra {
		set[lower(w)] = struct{}{}
	}
	return set
}
