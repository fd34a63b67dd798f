package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/andrewyi/uninews/src/analyzer"
	"github.com/andrewyi/uninews/src/config"
	"github.com/andrewyi/uninews/src/controller"
	"github.com/andrewyi/uninews/src/core"
	"github.com/andrewyi/uninews/src/dbstorage"
	"github.com/andrewyi/uninews/src/downloader"
	"github.com/andrewyi/uninews/src/entity"
	"github.com/andrewyi/uninews/src/filestorage"
	"github.com/andrewyi/uninews/src/util"
)

type Server struct {
	logger *log.Logger
	config *config.Config
	runID  string

	out    io.Writer // 结果报告
	logOut io.Writer

	controllerOpts []controller.Option
	now            func() time.Time
}

// 一次运行的结果
type Result struct {
	RunID string
	Path  string
	Rows  []entity.ArticleRow
}

func NewServer() *Server {
	return &Server{
		out:    os.Stdout,
		logOut: os.Stdout,
		now:    time.Now,
	}
}

func (s *Server) Start(ctx *cli.Context) error {
	cfg := config.Default()
	if err := util.ReadConfig(ctx.String("config"), cfg); err != nil {
		return fmt.Errorf("fail to load config, err: %w", err)
	}
	applyFlags(ctx, cfg)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err := s.Run(runCtx, cfg)
	return err
}

// Run 配置类错误（非法参数、站点列表为空、不支持的输出格式、数据库不可用）在抓取开始前返回
func (s *Server) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s.config = cfg
	s.runID = uuid.New().String()
	s.logger = newLogger(cfg, s.logOut, s.runID)

	startedAt := s.now()

	sites := core.NewDefaultSiteMap()
	if cfg.Sites.File != "" {
		loaded, err := core.LoadSites(cfg.Sites.File)
		if err != nil {
			return nil, err
		}
		sites = loaded
	}

	outPath, err := s.outputPath(startedAt)
	if err != nil {
		return nil, err
	}

	var dbStorage *dbstorage.SimpleDBStorage
	if cfg.Database.URL != "" {
		dbStorage, err = dbstorage.NewSimpleDBStorage(cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("fail to create dbstorage handler: %w", err)
		}
		defer dbStorage.Close()
	}

	s.logger.WithField("sites", sites.Len()).WithField("out", outPath).Info("crawl started")

	d := downloader.NewSimpleDownloader(cfg.Crawler, s.logger)
	a := analyzer.NewSimpleAnalyzer(cfg.Selectors, s.logger)
	opts := append([]controller.Option{controller.WithClock(s.now)}, s.controllerOpts...)
	c := controller.NewSimpleController(cfg.Crawler, d, a, s.logger, opts...)

	session := core.Crawl(ctx, s.logger, c, sites, cfg.Crawler.SiteWorkers)
	rows := session.Rows()

	if err := filestorage.NewSimpleFileStorage(s.logger).Store(outPath, rows); err != nil {
		return nil, err
	}

	if dbStorage != nil {
		if err := dbStorage.SaveRows(s.runID, rows); err != nil {
			// 文件已经导出，落库失败只记录
			s.logger.WithError(err).Error("fail to save rows into database")
		}
	}

	s.logger.WithField("rows", len(rows)).WithField("elapsed", s.now().Sub(startedAt)).Info("crawl finished")
	s.report(outPath, session)

	return &Result{RunID: s.runID, Path: outPath, Rows: rows}, nil
}

func (s *Server) outputPath(startedAt time.Time) (string, error) {
	path := s.config.Output.Path
	if path == "" {
		ext, err := config.NormalizeExt(s.config.Output.Ext)
		if err != nil {
			return "", err
		}
		path = filestorage.DefaultOutput(ext, startedAt)
	}
	if _, err := filestorage.CheckExt(path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Server) report(path string, session *entity.Session) {
	fmt.Fprintf(s.out, "\nSaved %d rows to: %s\n", session.Len(), path)
	if session.Len() == 0 {
		return
	}

	names, counts := session.CountByUniversity()
	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})

	fmt.Fprintln(s.out, "\nPer-university counts:")
	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"University", "Count"})
	for _, n := range names {
		t.AppendRow(table.Row{n, counts[n]})
	}
	t.Render()
}
