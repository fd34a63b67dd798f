package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andrewyi/uninews/src/enum"
)

var (
	ErrInvalidTimeout     = errors.New("timeout must be positive")
	ErrInvalidDelay       = errors.New("delay must satisfy 0 <= delay_min <= delay_max")
	ErrInvalidMaxPerSite  = errors.New("max_per_site must not be negative")
	ErrInvalidSiteWorkers = errors.New("site_workers must be at least 1")
	ErrInvalidRate        = errors.New("requests_per_second must not be negative")
	ErrUnsupportedExt     = errors.New("output must end with .xlsx or .csv")
)

const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/124.0 Safari/537.36"

type Config struct {
	Log struct {
		Context   bool   `mapstructure:"context"`
		Level     string `mapstructure:"level"` // 非空时覆盖verbosity
		Verbosity int    `mapstructure:"verbosity"`
	} `mapstructure:"log"`

	Crawler CrawlConfig `mapstructure:"crawler"`

	Selectors Selectors `mapstructure:"selectors"`

	Sites struct {
		File string `mapstructure:"file"`
	} `mapstructure:"sites"`

	Output struct {
		Path string `mapstructure:"path"`
		Ext  string `mapstructure:"ext"`
	} `mapstructure:"output"`

	Database struct {
		Driver string `mapstructure:"driver"` // postgres | sqlite3
		URL    string `mapstructure:"url"`
	} `mapstructure:"database"`
}

// CrawlConfig 抓取相关参数，时间单位均为秒
type CrawlConfig struct {
	Timeout           uint32   `mapstructure:"timeout"`
	DelayMin          float64  `mapstructure:"delay_min"`
	DelayMax          float64  `mapstructure:"delay_max"`
	MaxPerSite        int      `mapstructure:"max_per_site"`
	UserAgent         string   `mapstructure:"user_agent"`
	AcceptLanguage    string   `mapstructure:"accept_language"`
	RequestsPerSecond float64  `mapstructure:"requests_per_second"` // 0 表示不限速
	SiteWorkers       uint32   `mapstructure:"site_workers"`
	Keywords          []string `mapstructure:"keywords"`
	ListPatterns      []string `mapstructure:"list_patterns"`
}

// 各字段按顺序尝试的选择器
type Selectors struct {
	Links []string `mapstructure:"links"`
	Title []string `mapstructure:"title"`
	Time  []string `mapstructure:"time"`
	Body  []string `mapstructure:"body"`
}

var DefaultKeywords = []string{
	"合作", "校企", "企业合作", "产学研", "战略合作", "签约", "校企合作", "产业合作",
	"企业捐赠", "合作办学", "联合实验室", "cooperation", "partnership", "collaboration",
}

var DefaultListPatterns = []string{"news/", "article/", "info/", "content/", "xxgg/", "xwdt/"}

func DefaultSelectors() Selectors {
	return Selectors{
		Links: []string{
			`a[href*="news"]`,
			`a[href*="article"]`,
			`a[href*="info"]`,
			`a[href*="content"]`,
			".news-list a", ".article-list a", ".news-item a", ".list-item a",
		},
		Title: []string{"h1", ".article-title", ".news-title", "title"},
		Time:  []string{".publish-time", ".article-time", ".news-time", "time"},
		Body:  []string{".article-content", ".news-content", ".content", "article"},
	}
}

func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		Timeout:        10,
		DelayMin:       1.0,
		DelayMax:       3.0,
		MaxPerSite:     10,
		UserAgent:      DefaultUserAgent,
		AcceptLanguage: "zh-CN,zh;q=0.9,en;q=0.8",
		SiteWorkers:    1,
		Keywords:       append([]string(nil), DefaultKeywords...),
		ListPatterns:   append([]string(nil), DefaultListPatterns...),
	}
}

func Default() *Config {
	cfg := &Config{}
	cfg.Crawler = DefaultCrawlConfig()
	cfg.Selectors = DefaultSelectors()
	cfg.Output.Ext = enum.ExtXLSX
	cfg.Database.Driver = "postgres"
	return cfg
}

func (c CrawlConfig) Validate() error {
	if c.Timeout == 0 {
		return ErrInvalidTimeout
	}
	if c.DelayMin < 0 || c.DelayMax < c.DelayMin {
		return fmt.Errorf("%w, got %v/%v", ErrInvalidDelay, c.DelayMin, c.DelayMax)
	}
	if c.MaxPerSite < 0 {
		return ErrInvalidMaxPerSite
	}
	if c.SiteWorkers == 0 {
		return ErrInvalidSiteWorkers
	}
	if c.RequestsPerSecond < 0 {
		return ErrInvalidRate
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Crawler.Validate(); err != nil {
		return err
	}
	if _, err := NormalizeExt(c.Output.Ext); err != nil {
		return err
	}
	return nil
}

// NormalizeExt 去掉前导点并转小写，仅接受xlsx/csv
func NormalizeExt(ext string) (string, error) {
	e := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	switch e {
	case enum.ExtXLSX, enum.ExtCSV:
		return e, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedExt, ext)
}
