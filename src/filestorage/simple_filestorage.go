// 按文件扩展名导出为xlsx或csv，列顺序见entity.ArticleColumns
package filestorage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/andrewyi/uninews/src/config"
	"github.com/andrewyi/uninews/src/entity"
	"github.com/andrewyi/uninews/src/enum"
)

const sheetName = "Sheet1"

type SimpleFileStorage struct {
	logger *log.Logger
}

func NewSimpleFileStorage(logger *log.Logger) FileStorage {
	return &SimpleFileStorage{
		logger: logger,
	}
}

// CheckExt 返回规范化后的扩展名，不支持的扩展名返回config.ErrUnsupportedExt
func CheckExt(path string) (string, error) {
	return config.NormalizeExt(filepath.Ext(path))
}

// DefaultOutput university_cooperation_news_<YYYYMMDD_HHMMSS>.<ext>
func DefaultOutput(ext string, t time.Time) string {
	return fmt.Sprintf("%s_%s.%s", enum.OutputPrefix, t.Format(enum.OutputTimeLayout), ext)
}

func (s *SimpleFileStorage) Store(path string, rows []entity.ArticleRow) error {
	ext, err := CheckExt(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}

	switch ext {
	case enum.ExtXLSX:
		err = writeXLSX(path, rows)
	default:
		err = writeCSV(path, rows)
	}
	if err != nil {
		return fmt.Errorf("fail to write %s: %w", path, err)
	}

	s.logger.WithField("path", path).WithField("rows", len(rows)).Info("rows exported")
	return nil
}

func writeXLSX(path string, rows []entity.ArticleRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", toCells(entity.ArticleColumns)); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(r.Values())); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func writeCSV(path string, rows []entity.ArticleRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(entity.ArticleColumns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r.Values()); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
