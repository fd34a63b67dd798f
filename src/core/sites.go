package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/andrewyi/uninews/src/entity"
)

var ErrNoSites = errors.New("no sites found")

var DefaultSites = []entity.Site{
	{Name: "清华大学", URL: "https://www.tsinghua.edu.cn/"},
	{Name: "北京大学", URL: "https://www.pku.edu.cn/"},
	{Name: "浙江大学", URL: "https://www.zju.edu.cn/"},
	{Name: "复旦大学", URL: "https://www.fudan.edu.cn/"},
	{Name: "上海交通大学", URL: "https://www.sjtu.edu.cn/"},
}

func NewDefaultSiteMap() *entity.SiteMap {
	return entity.NewSiteMap(DefaultSites...)
}

// LoadSites 读取带表头name,url的站点列表，支持.csv与.xlsx（取第一个sheet）
// 任一字段为空的行被跳过；没有有效行时返回ErrNoSites
func LoadSites(path string) (*entity.SiteMap, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readXLSX(path)
	} else {
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("fail to read sites file %s: %w", path, err)
	}

	sites := parseSites(rows)
	if sites.Len() == 0 {
		return nil, fmt.Errorf("%w in %s (need headers: name,url)", ErrNoSites, path)
	}
	return sites, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

// 第一行为表头，列顺序不限
func parseSites(rows [][]string) *entity.SiteMap {
	sites := entity.NewSiteMap()
	if len(rows) == 0 {
		return sites
	}

	nameCol, urlCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "name":
			nameCol = i
		case "url":
			urlCol = i
		}
	}
	if nameCol < 0 || urlCol < 0 {
		return sites
	}

	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, nameCol))
		url := strings.TrimSpace(cell(row, urlCol))
		if name == "" || url == "" {
			continue
		}
		sites.Set(name, url)
	}
	return sites
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
