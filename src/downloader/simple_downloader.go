// 简单的http GET下载，不做重试
// 失败（连接错误、超时、非2xx）只记录warning并返回失败状态的PageInfo
package downloader

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/time/rate"

	"github.com/andrewyi/uninews/src/config"
	"github.com/andrewyi/uninews/src/entity"
	"github.com/andrewyi/uninews/src/enum"
)

type SimpleDownloader struct {
	logger  *log.Logger
	headers http.Header
	limiter *rate.Limiter

	client *http.Client
}

func NewSimpleDownloader(cfg config.CrawlConfig, logger *log.Logger) Downloader {
	headers := make(http.Header)
	headers.Set("User-Agent", cfg.UserAgent)
	headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	if cfg.AcceptLanguage != "" {
		headers.Set("Accept-Language", cfg.AcceptLanguage)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &SimpleDownloader{
		logger:  logger,
		headers: headers,
		limiter: rate.NewLimiter(limit, 1),
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

func (s *SimpleDownloader) Download(ctx context.Context, url string) entity.PageInfo {
	content, err := s.get(ctx, url)
	if err != nil {
		s.logger.WithError(err).WithField("url", url).Warn("fail to download")
		return entity.PageInfo{
			URL:    url,
			State:  enum.PageStateFail,
			Remark: err.Error(),
		}
	}

	s.logger.WithField("url", url).WithField("size", len(content)).Debug("downloaded")
	return entity.PageInfo{
		URL:     url,
		State:   enum.PageStateSuccess,
		Content: content,
	}
}

func (s *SimpleDownloader) get(ctx context.Context, url string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	for k, v := range s.headers {
		req.Header[k] = v
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, enum.MaxBodySize))
	if err != nil {
		return "", err
	}

	return decode(body, resp.Header.Get("Content-Type"))
}

// 编码优先取Content-Type中的charset，其次取页面中可确定的meta声明，否则按UTF-8处理
func decode(body []byte, contentType string) (string, error) {
	enc := lookupEncoding(body, contentType)
	if enc == nil {
		return string(body), nil
	}
	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("fail to decode body: %w", err)
	}
	return string(out), nil
}

func lookupEncoding(body []byte, contentType string) encoding.Encoding {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if label := params["charset"]; label != "" {
			if enc, name := charset.Lookup(label); enc != nil && name != "utf-8" {
				return enc
			}
			return nil
		}
	}

	// BOM或meta声明；DetermineEncoding在无法判断时回退为windows-1252，此时按UTF-8处理
	enc, name, certain := charset.DetermineEncoding(body, "text/html")
	if name == "utf-8" || (!certain && name == "windows-1252") {
		return nil
	}
	return enc
}
