// Package service 聚合展示层之下的应用服务
package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fitkeys/workout-sync-service/pkg/logger"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// VideoMetaService looks up video titles from the platform metadata API
// VideoMetaService 从视频平台元数据接口查询标题
// Lookups are best effort: no credential, HTTP failure or an empty result all
// yield an empty title and nil error, never a user-facing failure.
// 查询是尽力而为的：没有凭证、HTTP 失败或空结果都返回空标题和 nil 错误，
// 不会向用户暴露失败
type VideoMetaService interface {
	LookupTitle(ctx context.Context, videoID string) (string, error)
}

type videoMetaService struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
	sf         singleflight.Group
}

// NewVideoMetaService 创建视频元数据服务，apiKey 为空时所有查询返回空标题
func NewVideoMetaService(apiKey string, log *zap.Logger) VideoMetaService {
	if log == nil {
		log = zap.NewNop()
	}
	return &videoMetaService{
		apiKey:   apiKey,
		endpoint: "https://www.googleapis.com/youtube/v3/videos",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: log,
	}
}

// videosResponse 元数据接口响应的最小子集
type videosResponse struct {
	Items []struct {
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

// LookupTitle 查询视频标题，同一视频的并发查询合并为一次请求
func (s *videoMetaService) LookupTitle(ctx context.Context, videoID string) (string, error) {
	if s.apiKey == "" || videoID == "" {
		return "", nil
	}

	v, err, _ := s.sf.Do(videoID, func() (interface{}, error) {
		return s.fetchTitle(ctx, videoID), nil
	})
	if err != nil {
		return "", nil
	}
	return v.(string), nil
}

func (s *videoMetaService) fetchTitle(ctx context.Context, videoID string) string {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("id", videoID)
	q.Set("key", s.apiKey)
	reqURL := fmt.Sprintf("%s?%s", s.endpoint, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ""
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("video meta lookup failed",
			zap.String(logger.FieldVideoID, videoID),
			zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("video meta lookup non-200",
			zap.String(logger.FieldVideoID, videoID),
			zap.Int("statusCode", resp.StatusCode))
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ""
	}

	var parsed videosResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if len(parsed.Items) == 0 {
		return ""
	}
	return parsed.Items[0].Snippet.Title
}
