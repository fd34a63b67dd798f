package analyzer

import (
	"github.com/andrewyi/uninews/src/entity"
)

// 解析失败或结构不符时返回空结果，不返回error
type Analyzer interface {
	ExtractLinks(html string, baseURL string) []entity.Link
	ExtractContent(html string, url string) entity.Article
}

// Queryable 对任意结构的html文档做选择器查询
// found为false表示没有元素匹配selector
type Queryable interface {
	SelectFirstText(selector string) (text string, found bool)
}
