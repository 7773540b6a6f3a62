package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/inkwell/internal/service"
)

type postPayload struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	FeaturedImage string   `json:"featured_image"`
	CategoryID    uint     `json:"category_id"`
	PublishedAt   string   `json:"published_at"`
	IsTrending    bool     `json:"is_trending"`
	Tags          []string `json:"tags"`
}

func (p postPayload) toInput(authorID uint) (service.PostInput, error) {
	input := service.PostInput{
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		CategoryID:    p.CategoryID,
		AuthorID:      authorID,
		IsTrending:    p.IsTrending,
		Tags:          p.Tags,
	}
	if p.PublishedAt != "" {
		publishedAt, err := time.Parse(time.RFC3339, p.PublishedAt)
		if err != nil {
			return input, err
		}
		input.PublishedAt = publishedAt
	}
	return input, nil
}

// AdminListPosts 返回后台文章列表。
func (a *API) AdminListPosts(c *gin.Context) {
	a.ListPosts(c)
}

// CreatePost 创建一篇文章，作者为当前登录用户。
func (a *API) CreatePost(c *gin.Context) {
	var payload postPayload
	if !bindJSON(c, &payload, "文章格式不正确") {
		return
	}

	userID, _ := sessionUserID(c)
	input, err := payload.toInput(userID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "发布时间格式不正确")
		return
	}

	post, err := a.posts.Create(input)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			respondError(c, http.StatusBadRequest, verrs.Error())
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "保存失败，请稍后重试")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": postView(*post)})
}

// UpdatePost 更新一篇文章。
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章 ID")
		return
	}

	var payload postPayload
	if !bindJSON(c, &payload, "文章格式不正确") {
		return
	}

	userID, _ := sessionUserID(c)
	input, err := payload.toInput(userID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "发布时间格式不正确")
		return
	}

	post, err := a.posts.Update(id, input)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			respondError(c, http.StatusBadRequest, verrs.Error())
		case errors.Is(err, service.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "文章不存在")
		default:
			c.Error(err)
			respondError(c, http.StatusInternalServerError, "保存失败，请稍后重试")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": postView(*post)})
}

// DeletePost 删除一篇文章及其评论。
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章 ID")
		return
	}

	if err := a.posts.Delete(id); err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "删除失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "文章已删除"})
}
