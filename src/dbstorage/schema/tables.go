// 数据库表，每次运行写入的行通过run_id区分
package schema

import (
	"time"
)

type Article struct {
	ID          uint64    `xorm:"bigint pk autoincr 'id'"`
	RunID       string    `xorm:"varchar(36) notnull index 'run_id'"`
	University  string    `xorm:"varchar(256) notnull 'university'"`
	Title       string    `xorm:"text 'title'"`
	PublishTime string    `xorm:"varchar(128) 'publish_time'"`
	Content     string    `xorm:"text 'content'"`
	URL         string    `xorm:"varchar(2048) notnull 'url'"`
	Domain      string    `xorm:"varchar(256) 'domain'"`
	LinkText    string    `xorm:"text 'link_text'"`
	CrawlTime   string    `xorm:"varchar(32) 'crawl_time'"`
	CreatedAt   time.Time `xorm:"created notnull 'created_at'"`
}

func (a *Article) TableName() string {
	return "articles"
}
