// 链接抽取与正文抽取，均基于goquery选择器
// 链接按选择器顺序、文档顺序收集，按(url, text)去重
package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"github.com/andrewyi/uninews/src/config"
	"github.com/andrewyi/uninews/src/entity"
	"github.com/andrewyi/uninews/src/enum"
	"github.com/andrewyi/uninews/src/util"
)

type SimpleAnalyzer struct {
	logger    *log.Logger
	selectors config.Selectors
}

func NewSimpleAnalyzer(selectors config.Selectors, logger *log.Logger) Analyzer {
	return &SimpleAnalyzer{
		logger:    logger,
		selectors: selectors,
	}
}

func (a *SimpleAnalyzer) ExtractLinks(content string, baseURL string) []entity.Link {
	doc, err := newDocument(content)
	if err != nil {
		a.logger.WithError(err).WithField("url", baseURL).Warn("fail to parse page")
		return nil
	}

	links := entity.NewLinkSet()
	for _, sel := range a.selectors.Links {
		doc.doc.Find(sel).Each(func(index int, element *goquery.Selection) {
			href, exists := element.Attr("href")
			if !exists || strings.TrimSpace(href) == "" {
				return
			}
			full, err := util.JoinURL(baseURL, href)
			if err != nil || !util.IsValidURL(full) {
				return
			}
			text := visibleText(element)
			if text == "" {
				return
			}
			links.Add(entity.Link{URL: full, Text: text})
		})
	}

	a.logger.WithField("url", baseURL).WithField("links", links.Len()).Debug("links extracted")
	return links.Links()
}

func (a *SimpleAnalyzer) ExtractContent(content string, url string) entity.Article {
	article := entity.Article{URL: url}

	doc, err := newDocument(content)
	if err != nil {
		a.logger.WithError(err).WithField("url", url).Warn("fail to parse page")
		return article
	}

	article.Title = PickText(doc, a.selectors.Title)
	article.PublishTime = PickText(doc, a.selectors.Time)
	body := PickText(doc, a.selectors.Body)
	if body == "" {
		// 没有匹配的正文容器，退化为整页文本
		body = doc.Text()
	}
	article.Content = Truncate(body, enum.MaxContentLength)
	return article
}

// PickText 返回第一个匹配且文本非空的选择器结果
func PickText(q Queryable, selectors []string) string {
	for _, s := range selectors {
		if txt, ok := q.SelectFirstText(s); ok && txt != "" {
			return txt
		}
	}
	return ""
}

// Truncate 超过max个字符时截断并追加省略号
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + enum.ContentEllipsis
}
