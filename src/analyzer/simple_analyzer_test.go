package analyzer

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewyi/uninews/src/config"
	"github.com/andrewyi/uninews/src/entity"
)

func newTestAnalyzer() Analyzer {
	logger, _ := test.NewNullLogger()
	return NewSimpleAnalyzer(config.DefaultSelectors(), logger)
}

func TestExtractLinksResolvesAndValidates(t *testing.T) {
	page := `<html><body>
		<a href="/news/1.html">产学研签约合作</a>
		<a href="javascript:void(0)">info news</a>
		<a href="mailto:news@x.edu">联系新闻中心</a>
		<a href="https://other.edu/article/9">Partnership</a>
		<a href="/news/empty.html">   </a>
		<a>news without href</a>
		<a href="/about.html">关于我们</a>
	</body></html>`

	links := newTestAnalyzer().ExtractLinks(page, "https://x.edu/")

	assert.Equal(t, []entity.Link{
		{URL: "https://x.edu/news/1.html", Text: "产学研签约合作"},
		{URL: "https://other.edu/article/9", Text: "Partnership"},
	}, links)
}

func TestExtractLinksDeduplicates(t *testing.T) {
	page := `<html><body>
		<ul class="news-list">
			<li><a href="/news/1.html">校企合作</a></li>
			<li><a href="/news/1.html">校企合作</a></li>
		</ul>
		<a href="/news/1.html">校企合作 更多</a>
	</body></html>`

	links := newTestAnalyzer().ExtractLinks(page, "https://x.edu/")

	// 同一个a同时被 a[href*="news"] 与 .news-list a 命中，也只保留一份
	assert.Equal(t, []entity.Link{
		{URL: "https://x.edu/news/1.html", Text: "校企合作"},
		{URL: "https://x.edu/news/1.html", Text: "校企合作 更多"},
	}, links)
}

func TestExtractLinksListContainers(t *testing.T) {
	page := `<html><body>
		<div class="list-item"><a href="/p/100.htm">联合实验室揭牌</a></div>
		<div class="news-item"><a href="2024/0101.htm">战略合作</a></div>
		<div class="other"><a href="/p/200.htm">not selected</a></div>
	</body></html>`

	links := newTestAnalyzer().ExtractLinks(page, "https://x.edu/xwdt/")

	assert.ElementsMatch(t, []entity.Link{
		{URL: "https://x.edu/p/100.htm", Text: "联合实验室揭牌"},
		{URL: "https://x.edu/xwdt/2024/0101.htm", Text: "战略合作"},
	}, links)
}

func TestExtractLinksNestedText(t *testing.T) {
	page := `<a href="/article/3"><span> 校企 </span>
		<em>合作</em><script>var x = 1;</script></a>`

	links := newTestAnalyzer().ExtractLinks(page, "https://x.edu")

	require.Len(t, links, 1)
	assert.Equal(t, "校企合作", links[0].Text)
	assert.Equal(t, "https://x.edu/article/3", links[0].URL)
}

func TestExtractContentSelectors(t *testing.T) {
	page := `<html><head><title>Site title</title></head><body>
		<h1> 校企合作签约仪式 </h1>
		<span class="publish-time">2024-05-01</span>
		<div class="article-content"><p>第一段</p><p>第二段</p></div>
		<div class="content">ignored</div>
	</body></html>`

	article := newTestAnalyzer().ExtractContent(page, "https://x.edu/news/1.html")

	assert.Equal(t, entity.Article{
		Title:       "校企合作签约仪式",
		PublishTime: "2024-05-01",
		Content:     "第一段第二段",
		URL:         "https://x.edu/news/1.html",
	}, article)
}

func TestExtractContentFallbackChain(t *testing.T) {
	page := `<html><head><title>Fallback title</title></head><body>
		<h1>   </h1>
		<time datetime="2024-01-01">2024年1月1日</time>
		<article>Body in article</article>
	</body></html>`

	article := newTestAnalyzer().ExtractContent(page, "https://x.edu/a")

	// 空的h1被跳过，继续尝试后续选择器
	assert.Equal(t, "Fallback title", article.Title)
	assert.Equal(t, "2024年1月1日", article.PublishTime)
	assert.Equal(t, "Body in article", article.Content)
}

func TestExtractContentNoSelectorsMatch(t *testing.T) {
	page := `<html><body><div><p>Just some text</p><style>p{}</style><p>here</p></div></body></html>`

	article := newTestAnalyzer().ExtractContent(page, "https://x.edu/a")

	assert.Equal(t, "", article.Title)
	assert.Equal(t, "", article.PublishTime)
	assert.Equal(t, "Just some texthere", article.Content)
	assert.Equal(t, "https://x.edu/a", article.URL)
}

func TestExtractContentTruncates(t *testing.T) {
	long := strings.Repeat("合", 600)
	article := newTestAnalyzer().ExtractContent(
		`<div class="news-content">`+long+`</div>`, "https://x.edu/a")

	assert.Equal(t, strings.Repeat("合", 500)+"...", article.Content)
}

func TestExtractContentEmptyDocument(t *testing.T) {
	article := newTestAnalyzer().ExtractContent("", "https://x.edu/a")
	assert.Equal(t, entity.Article{URL: "https://x.edu/a"}, article)
}

func TestTruncate(t *testing.T) {
	exact := strings.Repeat("a", 500)
	assert.Equal(t, exact, Truncate(exact, 500))
	assert.Equal(t, "short", Truncate("short", 500))

	over := strings.Repeat("a", 501)
	got := Truncate(over, 500)
	assert.Equal(t, exact+"...", got)
	assert.Len(t, []rune(got), 503)
}

type fakeQueryable map[string]string

func (f fakeQueryable) SelectFirstText(selector string) (string, bool) {
	txt, ok := f[selector]
	return txt, ok
}

func TestPickText(t *testing.T) {
	q := fakeQueryable{".empty": "", ".second": "second", ".third": "third"}

	assert.Equal(t, "second", PickText(q, []string{".missing", ".empty", ".second", ".third"}))
	assert.Equal(t, "", PickText(q, []string{".missing"}))
	assert.Equal(t, "", PickText(q, nil))
}
