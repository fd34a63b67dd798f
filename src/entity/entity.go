package entity

import (
	"sync"
)

// 保存了下载的内容
type PageInfo struct {
	URL     string
	State   uint32 // 见enum.PageState*
	Remark  string // error description, if any
	Content string
}

// 一所大学：展示名称 + 主页地址
type Site struct {
	Name string
	URL  string
}

// SiteMap 有序且名称唯一
type SiteMap struct {
	sites []Site
	index map[string]int
}

func NewSiteMap(sites ...Site) *SiteMap {
	m := &SiteMap{index: make(map[string]int)}
	for _, s := range sites {
		m.Set(s.Name, s.URL)
	}
	return m
}

// Set 新名称追加到末尾；已存在的名称保留原位置，仅更新url
func (m *SiteMap) Set(name, url string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[name]; ok {
		m.sites[i].URL = url
		return
	}
	m.index[name] = len(m.sites)
	m.sites = append(m.sites, Site{Name: name, URL: url})
}

func (m *SiteMap) Get(name string) (string, bool) {
	i, ok := m.index[name]
	if !ok {
		return "", false
	}
	return m.sites[i].URL, true
}

func (m *SiteMap) Len() int {
	return len(m.sites)
}

// Sites 返回副本，顺序与插入顺序一致
func (m *SiteMap) Sites() []Site {
	out := make([]Site, len(m.sites))
	copy(out, m.sites)
	return out
}

// 候选链接：绝对地址 + 锚文本
type Link struct {
	URL  string
	Text string
}

// LinkSet 按首次出现的顺序去重
type LinkSet struct {
	links []Link
	seen  map[Link]struct{}
}

func NewLinkSet() *LinkSet {
	return &LinkSet{seen: make(map[Link]struct{})}
}

// Add 返回是否为新元素
func (s *LinkSet) Add(l Link) bool {
	if _, ok := s.seen[l]; ok {
		return false
	}
	s.seen[l] = struct{}{}
	s.links = append(s.links, l)
	return true
}

func (s *LinkSet) AddAll(links []Link) {
	for _, l := range links {
		s.Add(l)
	}
}

func (s *LinkSet) Contains(l Link) bool {
	_, ok := s.seen[l]
	return ok
}

func (s *LinkSet) Len() int {
	return len(s.links)
}

func (s *LinkSet) Links() []Link {
	out := make([]Link, len(s.links))
	copy(out, s.links)
	return out
}

// 从文章页中抽取的字段，缺失字段为空字符串
type Article struct {
	Title       string
	PublishTime string
	Content     string
	URL         string
}

// 最终输出的一行
type ArticleRow struct {
	University  string
	Title       string
	PublishTime string
	Content     string
	URL         string
	LinkText    string
	CrawlTime   string
}

// 导出文件的列顺序
var ArticleColumns = []string{
	"university", "title", "publish_time", "content", "url", "link_text", "crawl_time",
}

func (r ArticleRow) Values() []string {
	return []string{
		r.University, r.Title, r.PublishTime, r.Content, r.URL, r.LinkText, r.CrawlTime,
	}
}

// Session 一次运行中累积的所有行，只追加
type Session struct {
	mu   sync.Mutex
	rows []ArticleRow
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Append(rows ...ArticleRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *Session) Rows() []ArticleRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ArticleRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// CountByUniversity 按学校统计行数，顺序为首次出现的顺序
func (s *Session) CountByUniversity() ([]string, map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	counts := make(map[string]int)
	for _, r := range s.rows {
		if _, ok := counts[r.University]; !ok {
			names = append(names, r.University)
		}
		counts[r.University]++
	}
	return names, counts
}
