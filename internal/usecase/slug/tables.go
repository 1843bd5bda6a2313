package slug

import "strings"

type mapping struct {
	from string
	to   string
}

// commonMappings is applied in order; Latin entries before Han entries so a
// Han term mapped to a Latin word is not shortened again.
var commonMappings = []mapping{
	{"javascript", "js"},
	{"typescript", "ts"},
	{"python", "py"},
	{"artificial-intelligence", "ai"},
	{"machine-learning", "ml"},
	{"deep-learning", "dl"},
	{"application-programming-interface", "api"},
	{"user-interface", "ui"},
	{"user-experience", "ux"},
	{"database", "db"},
	{"development", "dev"},
	{"production", "prod"},

	{"人工智能", "ai"},
	{"机器学习", "ml"},
	{"深度学习", "dl"},
	{"数据库", "database"},
	{"应用程序", "app"},
	{"编程接口", "api"},
	{"用户界面", "ui"},
	{"用户体验", "ux"},
	{"开发", "dev"},
	{"生产", "prod"},
	{"测试", "test"},
	{"项目", "project"},
	{"系统", "system"},
	{"网站", "website"},
	{"博客", "blog"},
	{"文章", "article"},
	{"教程", "tutorial"},
	{"指南", "guide"},
}

// punctuation is replaced by hyphen-delimited words, or a bare hyphen.
var punctuation = strings.NewReplacer(
	"&", "-and-",
	"+", "-plus-",
	"@", "-at-",
	"#", "-hash-",
	"%", "-percent-",
	"=", "-equals-",
	"<", "-lt-",
	">", "-gt-",
	"|", "-or-",
	`\`, "-backslash-",
	"/", "-slash-",
	"?", "-question-",
	"!", "-exclamation-",
	"*", "-star-",
	`"`, "-quote-",
	"'", "-quote-",
	"(", "-",
	")", "-",
	"[", "-",
	"]", "-",
	"{", "-",
	"}", "-",
	"：", "-colon-",
	"；", "-semicolon-",
	"，", "-comma-",
	"。", "-period-",
	"！", "-exclamation-",
	"？", "-question-",
	"（", "-",
	"）", "-",
	"【", "-",
	"】", "-",
)

var stopWords = toSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
	"is", "are", "was", "were",
	"的", "了", "是", "在", "我", "有", "和", "就", "不", "都", "一", "一个", "上", "也", "很",
	"到", "说", "要", "去", "你", "会", "着",
)

// compactStopWords extends stopWords with question words and generic
// article-type words.
var compactStopWords = union(stopWords, toSet(
	"how", "what", "when", "where", "why", "which", "who",
	"如何", "什么", "怎么", "哪里", "为什么", "哪个", "谁",
	"tutorial", "guide", "introduction", "basic", "advanced",
	"教程", "指南", "介绍", "基础", "高级", "入门",
))

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func union(a, b map[string]struct{}) map[string]struct{} {
	m := make(map[string]struct{}, len(a)+len(b))
	for w := range a {
		m[w] = struct{}{}
	}
	for w := range b {
		m[w] = struct{}{}
	}
	return m
}
