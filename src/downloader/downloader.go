package downloader

import (
	"context"

	"github.com/andrewyi/uninews/src/entity"
)

// 下载失败通过PageInfo.State表示，不返回error
type Downloader interface {
	Download(ctx context.Context, url string) entity.PageInfo
}
