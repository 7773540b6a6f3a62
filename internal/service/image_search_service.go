package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrPexelsAPIKeyMissing 表示未配置 Pexels API Key。
var ErrPexelsAPIKeyMissing = errors.New("pexels api key is required")

// ImageResult 是一条候选配图。
type ImageResult struct {
	URL          string
	Photographer string
	Alt          string
}

type pexelsSearchResponse struct {
	Photos []struct {
		Alt          string `json:"alt"`
		Photographer string `json:"photographer"`
		Src          struct {
			Large    string `json:"large"`
			Original string `json:"original"`
		} `json:"src"`
	} `json:"photos"`
}

// ImageSearchService 通过 Pexels 搜索文章配图。
type ImageSearchService struct {
	settings *SiteSettingService
	http     httpDoer
	baseURL  string
}

// NewImageSearchService 构造默认的 ImageSearchService。
func NewImageSearchService(settings *SiteSettingService) *ImageSearchService {
	return &ImageSearchService{
		settings: settings,
		http:     &http.Client{Timeout: 30 * time.Second},
		baseURL:  "https://api.pexels.com/v1",
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *ImageSearchService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.http = &http.Client{Timeout: 30 * time.Second}
		return
	}
	s.http = client
}

// SetBaseURL 覆盖默认的 Pexels API 地址。
func (s *ImageSearchService) SetBaseURL(base string) {
	s.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// Search 返回与查询词匹配的配图候选。
func (s *ImageSearchService) Search(ctx context.Context, query string, perPage int) ([]ImageResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, errors.New("query is required")
	}
	if perPage <= 0 {
		perPage = 6
	}

	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("读取站点设置失败: %w", err)
	}
	apiKey := strings.TrimSpace(settings.PexelsAPIKey)
	if apiKey == "" {
		return nil, ErrPexelsAPIKeyMissing
	}

	endpoint := s.baseURL + "/search?query=" + url.QueryEscape(trimmed) +
		"&per_page=" + strconv.Itoa(perPage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build pexels request: %w", err)
	}
	req.Header.Set("Authorization", apiKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call pexels: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read pexels response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pexels returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded pexelsSearchResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode pexels response: %w", err)
	}

	results := make([]ImageResult, 0, len(decoded.Photos))
	for _, photo := range decoded.Photos {
		src := photo.Src.Large
		if src == "" {
			src = photo.Src.Original
		}
		if src == "" {
			continue
		}
		results = append(results, ImageResult{
			URL:          src,
			Photographer: photo.Photographer,
			Alt:          photo.Alt,
		})
	}
	return results, nil
}
