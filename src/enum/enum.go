package enum

const (
	// 定义了page的状态
	// 下载失败的页面不会重试，本次运行中直接跳过
	PageStatePending = 0
	PageStateSuccess = 1
	PageStateFail    = 2

	// 正文最大保留字符数（按rune计），超过则截断并追加ContentEllipsis
	MaxContentLength = 500
	ContentEllipsis  = "..."

	// 响应体读取上限
	MaxBodySize = 10 << 20

	CrawlTimeLayout  = "2006-01-02 15:04:05"
	OutputTimeLayout = "20060102_150405"

	OutputPrefix = "university_cooperation_news"

	ExtXLSX = "xlsx"
	ExtCSV  = "csv"
)
