package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/service"
)

type generatePayload struct {
	Prompt string `json:"prompt"`
	Field  string `json:"field"`
}

// GenerateContent 调用 AI 服务生成文章内容。未指定字段时一次生成
// 标题、摘要与正文。
func (a *API) GenerateContent(c *gin.Context) {
	var payload generatePayload
	if !bindJSON(c, &payload, "请求格式不正确") {
		return
	}

	prompt := strings.TrimSpace(payload.Prompt)
	if prompt == "" {
		respondError(c, http.StatusBadRequest, "请填写生成主题")
		return
	}

	if field := strings.TrimSpace(payload.Field); field != "" {
		text, err := a.writer.GenerateField(c.Request.Context(), prompt, field)
		if err != nil {
			a.respondAIError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"field": field, "text": text})
		return
	}

	post, err := a.writer.GeneratePost(c.Request.Context(), prompt)
	if err != nil {
		a.respondAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   post.Title,
		"excerpt": post.Excerpt,
		"content": post.Content,
	})
}

// SearchImages 基于查询词返回候选配图。
func (a *API) SearchImages(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		respondError(c, http.StatusBadRequest, "请填写搜索关键词")
		return
	}

	perPage := 6
	if raw := strings.TrimSpace(c.Query("per_page")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			perPage = parsed
		}
	}

	results, err := a.images.Search(c.Request.Context(), query, perPage)
	if err != nil {
		if errors.Is(err, service.ErrPexelsAPIKeyMissing) {
			respondError(c, http.StatusBadRequest, "请先在站点设置中配置 Pexels API Key")
			return
		}
		c.Error(err)
		respondError(c, http.StatusBadGateway, "图片搜索失败，请稍后重试")
		return
	}

	out := make([]gin.H, 0, len(results))
	for _, result := range results {
		out = append(out, gin.H{
			"url":          result.URL,
			"photographer": result.Photographer,
			"alt":          result.Alt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"images": out})
}

func (a *API) respondAIError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrAIAPIKeyMissing) {
		respondError(c, http.StatusBadRequest, "请先在站点设置中配置 OpenRouter API Key")
		return
	}
	c.Error(err)
	respondError(c, http.StatusBadGateway, "内容生成失败，请稍后重试")
}
