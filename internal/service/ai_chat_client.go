package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrAIAPIKeyMissing 表示未配置 OpenRouter API Key。
var ErrAIAPIKeyMissing = errors.New("openrouter api key is required")

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type aiChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

type aiChatResponse struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// aiChatClient 封装对 OpenRouter 聊天补全接口的调用。
type aiChatClient struct {
	settings     *SiteSettingService
	http         httpDoer
	baseURL      string
	model        string
	defaultModel string
}

func newAIChatClient(settings *SiteSettingService, defaultModel string) *aiChatClient {
	return &aiChatClient{
		settings:     settings,
		http:         &http.Client{Timeout: 180 * time.Second},
		baseURL:      "https://openrouter.ai/api/v1",
		model:        strings.TrimSpace(defaultModel),
		defaultModel: strings.TrimSpace(defaultModel),
	}
}

func (c *aiChatClient) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 20 * time.Second}
		return
	}
	c.http = client
}

func (c *aiChatClient) SetBaseURL(base string) {
	c.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

func (c *aiChatClient) SetModel(model string) {
	model = strings.TrimSpace(model)
	if model == "" {
		return
	}
	c.model = model
}

func (c *aiChatClient) call(ctx context.Context, req aiChatRequest) (aiChatResponse, error) {
	settings, err := c.settings.GetSettings()
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("读取站点设置失败: %w", err)
	}

	apiKey := strings.TrimSpace(settings.OpenRouterAPIKey)
	if apiKey == "" {
		return aiChatResponse{}, ErrAIAPIKeyMissing
	}

	base := c.baseURL
	if strings.TrimSpace(base) == "" {
		base = "https://openrouter.ai/api/v1"
	}
	model := c.model
	if strings.TrimSpace(model) == "" {
		model = c.defaultModel
	}

	client := c.http
	if client == nil {
		client = http.DefaultClient
	}

	maxTokens := req.MaxTokens
	if maxTokens < 0 {
		maxTokens = 0
	}

	payload := chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(httpReq)
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("call openrouter: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("read chat response: %w", err)
	}

	var decoded chatCompletionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return aiChatResponse{}, fmt.Errorf("decode chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := strings.TrimSpace(decoded.Error.Message)
		if message == "" {
			message = strings.TrimSpace(string(raw))
		}
		return aiChatResponse{}, fmt.Errorf("openrouter returned %d: %s", resp.StatusCode, message)
	}

	if len(decoded.Choices) == 0 {
		return aiChatResponse{}, errors.New("openrouter returned no choices")
	}

	return aiChatResponse{
		Content:          decoded.Choices[0].Message.Content,
		PromptTokens:     decoded.Usage.PromptTokens,
		CompletionTokens: decoded.Usage.CompletionTokens,
	}, nil
}
