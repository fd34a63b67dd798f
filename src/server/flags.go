package server

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/andrewyi/uninews/src/config"
)

func Flags() []cli.Flag {
	def := config.Default()
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config,c",
			Usage: "配置文件（可选，yaml/toml/json）",
		},
		cli.StringFlag{
			Name:  "out,o",
			Usage: "输出文件（.xlsx或.csv），默认按时间戳生成",
		},
		cli.StringFlag{
			Name:  "ext",
			Usage: "未指定--out时的输出格式（xlsx|csv）",
			Value: def.Output.Ext,
		},
		cli.IntFlag{
			Name:  "max-per-site",
			Usage: "每个站点最多抓取的文章数",
			Value: def.Crawler.MaxPerSite,
		},
		cli.Float64Flag{
			Name:  "delay-min",
			Usage: "文章请求之间的最小间隔（秒）",
			Value: def.Crawler.DelayMin,
		},
		cli.Float64Flag{
			Name:  "delay-max",
			Usage: "文章请求之间的最大间隔（秒）",
			Value: def.Crawler.DelayMax,
		},
		cli.IntFlag{
			Name:  "timeout",
			Usage: "http超时（秒）",
			Value: int(def.Crawler.Timeout),
		},
		cli.StringFlag{
			Name:  "sites-file",
			Usage: "站点列表文件（.csv或.xlsx，表头name,url）",
		},
		cli.IntFlag{
			Name:  "verbose,v",
			Usage: "日志级别：0=warning 1=info 2=debug",
		},
		cli.Float64Flag{
			Name:  "rps",
			Usage: "全局每秒请求数上限，0表示不限",
		},
		cli.IntFlag{
			Name:  "site-workers",
			Usage: "并行抓取的站点数",
			Value: int(def.Crawler.SiteWorkers),
		},
		cli.StringFlag{
			Name:  "db-driver",
			Usage: "结果落库的驱动（postgres|sqlite3）",
			Value: def.Database.Driver,
		},
		cli.StringFlag{
			Name:  "db-url",
			Usage: "结果落库的连接串，为空则不落库",
		},
	}
}

// 只有命令行中显式给出的参数才覆盖配置文件
func applyFlags(ctx *cli.Context, cfg *config.Config) {
	if ctx.IsSet("out") {
		cfg.Output.Path = ctx.String("out")
	}
	if ctx.IsSet("ext") {
		cfg.Output.Ext = ctx.String("ext")
	}
	if ctx.IsSet("max-per-site") {
		cfg.Crawler.MaxPerSite = ctx.Int("max-per-site")
	}
	if ctx.IsSet("delay-min") {
		cfg.Crawler.DelayMin = ctx.Float64("delay-min")
	}
	if ctx.IsSet("delay-max") {
		cfg.Crawler.DelayMax = ctx.Float64("delay-max")
	}
	if ctx.IsSet("timeout") {
		cfg.Crawler.Timeout = nonNegative(ctx.Int("timeout"))
	}
	if ctx.IsSet("sites-file") {
		cfg.Sites.File = ctx.String("sites-file")
	}
	if ctx.IsSet("verbose") {
		cfg.Log.Verbosity = ctx.Int("verbose")
	}
	if ctx.IsSet("rps") {
		cfg.Crawler.RequestsPerSecond = ctx.Float64("rps")
	}
	if ctx.IsSet("site-workers") {
		cfg.Crawler.SiteWorkers = nonNegative(ctx.Int("site-workers"))
	}
	if ctx.IsSet("db-driver") {
		cfg.Database.Driver = ctx.String("db-driver")
	}
	if ctx.IsSet("db-url") {
		cfg.Database.URL = ctx.String("db-url")
	}
}

// 负数按0处理，交给Validate报错
func nonNegative(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
