package core

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/andrewyi/uninews/src/controller"
	"github.com/andrewyi/uninews/src/entity"
	"github.com/andrewyi/uninews/src/routingpool"
)

var ErrSitePanic = errors.New("site crawl panicked")

// Crawl 按sites的顺序逐个抓取，单个站点的失败（包括panic）只记录日志，不影响其他站点
// workers大于1时多个站点并行，各站点的行先各自累积，最后按站点顺序合并
func Crawl(ctx context.Context, logger *log.Logger, c controller.Controller, sites *entity.SiteMap, workers uint32) *entity.Session {
	list := sites.Sites()
	results := make([]*entity.Session, len(list))
	jobs := make(chan int)

	pool := routingpool.NewSimpleRoutingPool(ctx, workers, func(ctx context.Context) {
		for {
			select {
			case <-ctx.Done():
				return
			case i, ok := <-jobs:
				if !ok || ctx.Err() != nil {
					return
				}
				local := entity.NewSession()
				results[i] = local
				if err := crawlSite(ctx, c, list[i], local); err != nil {
					entry := logger.WithError(err).WithField("site", list[i].Name)
					if errors.Is(err, context.Canceled) {
						entry.Warn("site crawl cancelled")
					} else {
						entry.Error("fail to crawl site")
					}
				}
			}
		}
	})
	if err := pool.Start(); err != nil {
		// 新建的pool不会出现重复启动
		logger.WithError(err).Error("fail to start routing pool")
	}

feed:
	for i := range list {
		if ctx.Err() != nil {
			logger.Warn("crawl interrupted, remaining sites skipped")
			break
		}
		select {
		case <-ctx.Done():
			logger.Warn("crawl interrupted, remaining sites skipped")
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	pool.Stop()

	session := entity.NewSession()
	for _, r := range results {
		if r != nil {
			session.Append(r.Rows()...)
		}
	}
	return session
}

func crawlSite(ctx context.Context, c controller.Controller, site entity.Site, session *entity.Session) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSitePanic, r)
		}
	}()
	return c.Process(ctx, site, session)
}
