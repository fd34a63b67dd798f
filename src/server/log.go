package server

import (
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/andrewyi/uninews/src/config"
)

// 0=warn 1=info 2及以上=debug
func levelForVerbosity(v int) log.Level {
	switch {
	case v <= 0:
		return log.WarnLevel
	case v == 1:
		return log.InfoLevel
	default:
		return log.DebugLevel
	}
}

// runHook 给每条日志附加本次运行的run_id
type runHook struct {
	runID string
}

func (h *runHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *runHook) Fire(entry *log.Entry) error {
	if _, ok := entry.Data["run_id"]; !ok {
		entry.Data["run_id"] = h.runID
	}
	return nil
}

func newLogger(cfg *config.Config, out io.Writer, runID string) *log.Logger {
	var logger = log.New()
	logger.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	logger.SetOutput(out)

	if cfg.Log.Context {
		logger.SetReportCaller(true)
	}

	level := levelForVerbosity(cfg.Log.Verbosity)
	if cfg.Log.Level != "" {
		if l, err := log.ParseLevel(cfg.Log.Level); err == nil {
			level = l
		}
	}
	logger.SetLevel(level)
	logger.AddHook(&runHook{runID: runID})
	return logger
}
