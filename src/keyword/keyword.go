// 关键词过滤：大小写不敏感的子串匹配
package keyword

import (
	"strings"
)

type Filter struct {
	keywords []string // 已转小写
}

// 空关键词会被忽略，否则任意非空文本都会命中
func NewFilter(keywords []string) *Filter {
	f := &Filter{}
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		f.keywords = append(f.keywords, strings.ToLower(kw))
	}
	return f
}

// Match text为空时总是返回false
func (f *Filter) Match(text string) bool {
	if text == "" {
		return false
	}
	tl := strings.ToLower(text)
	for _, kw := range f.keywords {
		if strings.Contains(tl, kw) {
			return true
		}
	}
	return false
}

func Contains(text string, keywords []string) bool {
	return NewFilter(keywords).Match(text)
}
