package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/service"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const (
	visitorCookieName   = "iw_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// ListPosts 返回符合筛选条件的文章列表。
func (a *API) ListPosts(c *gin.Context) {
	filter := service.PostFilter{
		Search: strings.TrimSpace(c.Query("search")),
		SortBy: strings.TrimSpace(c.Query("sort")),
	}

	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	posts, err := a.posts.List(filter)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取文章失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": postViews(posts)})
}

// ShowPost 返回单篇文章并记录一次去重后的浏览。
func (a *API) ShowPost(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	post, err := a.posts.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "文章不存在")
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取文章失败")
		return
	}

	if err := a.posts.RecordView(post.ID, a.visitorID(c)); err != nil {
		// 浏览计数失败不影响正文返回。
		c.Error(err)
	} else {
		post.Views++
	}

	view := postView(*post)
	view["content_html"] = renderMarkdown(post.Content)
	c.JSON(http.StatusOK, gin.H{"post": view})
}

// LikePost 为文章点赞。
func (a *API) LikePost(c *gin.Context) {
	post, ok := a.postBySlugParam(c)
	if !ok {
		return
	}

	if err := a.posts.Like(post.ID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "文章不存在")
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "点赞失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已点赞"})
}

// ListCategories 返回所有分类及文章数量。
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取分类失败")
		return
	}

	out := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		view := categoryView(category.Category)
		view["post_count"] = category.PostCount
		out = append(out, view)
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// ListComments 返回某篇文章的全部评论。
func (a *API) ListComments(c *gin.Context) {
	post, ok := a.postBySlugParam(c)
	if !ok {
		return
	}

	comments, err := a.comments.ListByPost(post.ID)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取评论失败")
		return
	}

	out := make([]gin.H, 0, len(comments))
	for _, comment := range comments {
		out = append(out, commentView(comment))
	}
	c.JSON(http.StatusOK, gin.H{"comments": out})
}

type commentPayload struct {
	Content string `json:"content"`
}

// CreateComment 为当前登录用户在文章下创建评论。
func (a *API) CreateComment(c *gin.Context) {
	post, ok := a.postBySlugParam(c)
	if !ok {
		return
	}

	userID, ok := sessionUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	var payload commentPayload
	if !bindJSON(c, &payload, "评论格式不正确") {
		return
	}

	comment, err := a.comments.Create(post.ID, userID, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentEmpty):
			respondError(c, http.StatusBadRequest, "请填写评论内容")
		case errors.Is(err, service.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "文章不存在")
		default:
			c.Error(err)
			respondError(c, http.StatusInternalServerError, "评论失败，请稍后重试")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": commentView(*comment)})
}

// ShowPublicSettings 返回站点的公开品牌信息。
func (a *API) ShowPublicSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		c.Error(err)
	}

	c.JSON(http.StatusOK, gin.H{
		"brand_name":  settings.BrandName,
		"brand_email": settings.BrandEmail,
		"brand_phone": settings.BrandPhone,
	})
}

// postBySlugParam 按路由参数解析文章，找不到时直接写出响应。
func (a *API) postBySlugParam(c *gin.Context) (*db.Post, bool) {
	slug := strings.TrimSpace(c.Param("slug"))

	post, err := a.posts.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "文章不存在")
			return nil, false
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取文章失败")
		return nil, false
	}
	return post, true
}

// visitorID 读取或生成标识访客的 cookie。
func (a *API) visitorID(c *gin.Context) string {
	if value, err := c.Cookie(visitorCookieName); err == nil && strings.TrimSpace(value) != "" {
		return value
	}

	id := uuid.NewString()
	c.SetCookie(visitorCookieName, id, visitorCookieMaxAge, "/", "", false, true)
	return id
}

func renderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return sanitizer.Sanitize(buf.String())
}
