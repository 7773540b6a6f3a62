package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const (
	// FieldTitle 生成文章标题。
	FieldTitle = "title"
	// FieldExcerpt 生成文章摘要。
	FieldExcerpt = "excerpt"
	// FieldContent 生成文章正文。
	FieldContent = "content"
)

const defaultWriterModel = "deepseek/deepseek-r1-0528-qwen3-8b:free"

var writerSystemPrompts = map[string]string{
	FieldTitle:   "You are a professional blog writer. STRICT INSTRUCTION: Return ONLY the blog post title, no keys, no JSON, no quotes, no code block, no explanation, no markdown. The title must be short, wise, and SEO-friendly (max 8 words, no fluff, no symbols, just the core topic, always including the main subject from the prompt).",
	FieldExcerpt: "You are a professional blog writer. STRICT INSTRUCTION: Return ONLY the blog post excerpt, no keys, no JSON, no quotes, no code block, no explanation, no markdown. The excerpt should be 100-150 words, SEO-friendly, and summarize the post engagingly.",
	FieldContent: "You are a professional blog writer. STRICT INSTRUCTION: Return ONLY the blog post content, no keys, no JSON, no quotes, no code block, no explanation, no markdown. The content should be at least 800 words, SEO-friendly, engaging, and informative.",
}

var writerUserPrompts = map[string]string{
	FieldTitle:   "Write a short, SEO-friendly blog post title for: %s",
	FieldExcerpt: "Write a 100-150 word SEO-friendly excerpt for a blog post about: %s",
	FieldContent: "Write a detailed, SEO-friendly, engaging blog post (at least 800 words) about: %s. Make sure to cover every aspect and detail of the prompt, leaving nothing out.",
}

var writerMaxTokens = map[string]int{
	FieldTitle:   64,
	FieldExcerpt: 320,
	FieldContent: 4096,
}

// GeneratedPost 汇总 AI 生成的文章三要素。
type GeneratedPost struct {
	Title   string
	Excerpt string
	Content string
}

// AIWriterService 基于大模型接口为后台生成文章标题、摘要与正文。
type AIWriterService struct {
	client *aiChatClient
}

// NewAIWriterService 构造默认的 AIWriterService。
func NewAIWriterService(settings *SiteSettingService) *AIWriterService {
	return &AIWriterService{
		client: newAIChatClient(settings, defaultWriterModel),
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *AIWriterService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// SetBaseURL 覆盖默认的 OpenRouter API 地址。
func (s *AIWriterService) SetBaseURL(base string) {
	s.client.SetBaseURL(base)
}

// SetModel 指定生成所使用的模型名称。
func (s *AIWriterService) SetModel(model string) {
	s.client.SetModel(model)
}

// GenerateField 为指定字段（title/excerpt/content）生成内容。
func (s *AIWriterService) GenerateField(ctx context.Context, prompt, field string) (string, error) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return "", fmt.Errorf("prompt is required")
	}

	systemPrompt, ok := writerSystemPrompts[field]
	if !ok {
		return "", fmt.Errorf("unsupported field %q", field)
	}

	result, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   fmt.Sprintf(writerUserPrompts[field], trimmed),
		MaxTokens:    writerMaxTokens[field],
		Temperature:  0.7,
	})
	if err != nil {
		return "", err
	}

	return cleanGeneratedText(result.Content), nil
}

// GeneratePost 依次生成标题、摘要与正文。
func (s *AIWriterService) GeneratePost(ctx context.Context, prompt string) (GeneratedPost, error) {
	var post GeneratedPost
	var err error

	if post.Title, err = s.GenerateField(ctx, prompt, FieldTitle); err != nil {
		return GeneratedPost{}, fmt.Errorf("generate title: %w", err)
	}
	if post.Excerpt, err = s.GenerateField(ctx, prompt, FieldExcerpt); err != nil {
		return GeneratedPost{}, fmt.Errorf("generate excerpt: %w", err)
	}
	if post.Content, err = s.GenerateField(ctx, prompt, FieldContent); err != nil {
		return GeneratedPost{}, fmt.Errorf("generate content: %w", err)
	}

	return post, nil
}

var (
	wrappingQuotesPattern = regexp.MustCompile("^['\"`]+|['\"`]+$")
	fieldPrefixPattern    = regexp.MustCompile(`(?i)^(title|excerpt|content)[:=]?\s*`)
)

// cleanGeneratedText 去掉模型偶尔带回的引号与字段前缀。
func cleanGeneratedText(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = wrappingQuotesPattern.ReplaceAllString(cleaned, "")
	cleaned = fieldPrefixPattern.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
