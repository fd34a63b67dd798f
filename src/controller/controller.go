package controller

import (
	"context"

	"github.com/andrewyi/uninews/src/entity"
)

// Process 抓取单个站点，把产生的行追加到session
// 网络错误在内部消化，返回的error仅表示站点级别的意外失败
type Controller interface {
	Process(ctx context.Context, site entity.Site, session *entity.Session) error
}
