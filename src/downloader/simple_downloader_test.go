package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/andrewyi/uninews/src/config"
	"github.com/andrewyi/uninews/src/enum"
)

func newTestDownloader(t *testing.T) (Downloader, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	cfg := config.DefaultCrawlConfig()
	cfg.Timeout = 1
	return NewSimpleDownloader(cfg, logger), hook
}

func TestDownloadSendsBrowserHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	d, _ := newTestDownloader(t)
	page := d.Download(context.Background(), srv.URL)

	require.Equal(t, uint32(enum.PageStateSuccess), page.State)
	assert.Equal(t, "<html>ok</html>", page.Content)
	assert.Equal(t, config.DefaultUserAgent, got.Get("User-Agent"))
	assert.Equal(t, "zh-CN,zh;q=0.9,en;q=0.8", got.Get("Accept-Language"))
	assert.Contains(t, got.Get("Accept"), "text/html")
}

func TestDownloadNon2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	d, hook := newTestDownloader(t)
	page := d.Download(context.Background(), srv.URL+"/news/")

	assert.Equal(t, uint32(enum.PageStateFail), page.State)
	assert.Empty(t, page.Content)
	assert.Contains(t, page.Remark, "404")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, srv.URL+"/news/", hook.LastEntry().Data["url"])
}

func TestDownloadConnectionErrorIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	d, _ := newTestDownloader(t)
	page := d.Download(context.Background(), url)

	assert.Equal(t, uint32(enum.PageStateFail), page.State)
	assert.NotEmpty(t, page.Remark)
}

func TestDownloadTimeoutIsFailure(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-time.After(3 * time.Second):
		}
	}))
	defer srv.Close()
	defer close(done)

	d, _ := newTestDownloader(t)
	page := d.Download(context.Background(), srv.URL)

	assert.Equal(t, uint32(enum.PageStateFail), page.State)
}

func TestDownloadDecodesDeclaredCharset(t *testing.T) {
	gbk, err := simplifiedchinese.GBK.NewEncoder().String("<html><body>校企合作</body></html>")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=gbk")
		_, _ = w.Write([]byte(gbk))
	}))
	defer srv.Close()

	d, _ := newTestDownloader(t)
	page := d.Download(context.Background(), srv.URL)

	require.Equal(t, uint32(enum.PageStateSuccess), page.State)
	assert.Contains(t, page.Content, "校企合作")
}

func TestDecode(t *testing.T) {
	gbkMeta, err := simplifiedchinese.GBK.NewEncoder().String(
		`<html><head><meta charset="gb2312"></head><body>产学研</body></html>`)
	require.NoError(t, err)

	tests := []struct {
		name        string
		body        string
		contentType string
		want        string
	}{
		{"no charset defaults to utf-8", "<p>合作</p>", "text/html", "合作"},
		{"missing header defaults to utf-8", "<p>合作</p>", "", "合作"},
		{"explicit utf-8", "<p>合作</p>", "text/html; charset=UTF-8", "合作"},
		{"meta declared gb2312", gbkMeta, "text/html", "产学研"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode([]byte(tt.body), tt.contentType)
			require.NoError(t, err)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestDownloadCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, _ := newTestDownloader(t)
	page := d.Download(ctx, srv.URL)
	assert.Equal(t, uint32(enum.PageStateFail), page.State)
}
