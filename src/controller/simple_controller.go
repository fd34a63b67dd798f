package controller

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/andrewyi/uninews/src/analyzer"
	"github.com/andrewyi/uninews/src/config"
	"github.com/andrewyi/uninews/src/downloader"
	"github.com/andrewyi/uninews/src/entity"
	"github.com/andrewyi/uninews/src/enum"
	"github.com/andrewyi/uninews/src/keyword"
	"github.com/andrewyi/uninews/src/util"
)

var ErrInvalidSiteURL = errors.New("invalid site url")

// Sleeper 在两次文章请求之间等待，ctx取消时应尽快返回
type Sleeper func(ctx context.Context, d time.Duration)

type Option func(*SimpleController)

func WithSleeper(s Sleeper) Option {
	return func(c *SimpleController) {
		c.sleep = s
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *SimpleController) {
		c.now = now
	}
}

type SimpleController struct {
	logger *log.Logger
	cfg    config.CrawlConfig
	filter *keyword.Filter

	downloader downloader.Downloader
	analyzer   analyzer.Analyzer

	sleep Sleeper
	now   func() time.Time
}

func NewSimpleController(
	cfg config.CrawlConfig, d downloader.Downloader, a analyzer.Analyzer, logger *log.Logger, opts ...Option) Controller {

	c := &SimpleController{
		logger:     logger,
		cfg:        cfg,
		filter:     keyword.NewFilter(cfg.Keywords),
		downloader: d,
		analyzer:   a,
		sleep:      sleepContext,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *SimpleController) Process(ctx context.Context, site entity.Site, session *entity.Session) error {
	if !util.IsValidURL(site.URL) {
		return fmt.Errorf("%w: %q", ErrInvalidSiteURL, site.URL)
	}
	logger := c.logger.WithField("site", site.Name)
	logger.Info("crawling")

	candidates := c.discover(ctx, site, logger)
	if err := ctx.Err(); err != nil {
		return err
	}

	var filtered []entity.Link
	for _, l := range candidates.Links() {
		if c.filter.Match(l.Text) {
			filtered = append(filtered, l)
		}
	}
	logger.WithField("candidates", len(filtered)).Info("candidate links")

	if len(filtered) > c.cfg.MaxPerSite {
		filtered = filtered[:c.cfg.MaxPerSite]
	}

	for _, link := range filtered {
		if err := ctx.Err(); err != nil {
			return err
		}

		page := c.downloader.Download(ctx, link.URL)
		if page.State != enum.PageStateSuccess {
			continue
		}
		article := c.analyzer.ExtractContent(page.Content, link.URL)
		session.Append(entity.ArticleRow{
			University:  site.Name,
			Title:       article.Title,
			PublishTime: article.PublishTime,
			Content:     article.Content,
			URL:         article.URL,
			LinkText:    link.Text,
			CrawlTime:   c.now().Format(enum.CrawlTimeLayout),
		})
		logger.WithField("url", link.URL).Debug("article saved")

		c.sleep(ctx, c.delay())
	}

	return nil
}

// 候选链接按发现顺序去重：先各列表页（按pattern顺序），再主页
func (c *SimpleController) discover(ctx context.Context, site entity.Site, logger *log.Entry) *entity.LinkSet {
	candidates := entity.NewLinkSet()

	for _, pat := range c.cfg.ListPatterns {
		listURL, err := util.JoinURL(site.URL, pat)
		if err != nil {
			logger.WithError(err).WithField("pattern", pat).Warn("fail to join list url")
			continue
		}
		page := c.downloader.Download(ctx, listURL)
		if page.State != enum.PageStateSuccess {
			continue
		}
		// 列表页本身不含关键词则不再抽取链接
		if !c.filter.Match(page.Content) {
			logger.WithField("url", listURL).Debug("list page has no keyword")
			continue
		}
		candidates.AddAll(c.analyzer.ExtractLinks(page.Content, listURL))
	}

	home := c.downloader.Download(ctx, site.URL)
	if home.State == enum.PageStateSuccess {
		candidates.AddAll(c.analyzer.ExtractLinks(home.Content, site.URL))
	}

	return candidates
}

// [delay_min, delay_max) 秒内均匀分布
func (c *SimpleController) delay() time.Duration {
	span := c.cfg.DelayMax - c.cfg.DelayMin
	secs := c.cfg.DelayMin
	if span > 0 {
		secs += rand.Float64() * span
	}
	return time.Duration(secs * float64(time.Second))
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
