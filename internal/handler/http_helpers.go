package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func profileView(profile db.Profile) gin.H {
	return gin.H{
		"id":         profile.ID,
		"name":       profile.Name,
		"email":      profile.Email,
		"avatar":     profile.Avatar,
		"bio":        profile.Bio,
		"role":       profile.Role,
		"created_at": formatTime(profile.CreatedAt),
		"updated_at": formatTime(profile.UpdatedAt),
	}
}

func categoryView(category db.Category) gin.H {
	return gin.H{
		"id":          category.ID,
		"name":        category.Name,
		"slug":        category.Slug,
		"description": category.Description,
		"created_at":  formatTime(category.CreatedAt),
		"updated_at":  formatTime(category.UpdatedAt),
	}
}

func postView(post db.Post) gin.H {
	view := gin.H{
		"id":             post.ID,
		"title":          post.Title,
		"slug":           post.Slug,
		"content":        post.Content,
		"excerpt":        post.Excerpt,
		"featured_image": post.FeaturedImage,
		"category_id":    post.CategoryID,
		"author_id":      post.AuthorID,
		"published_at":   formatTime(post.PublishedAt),
		"is_trending":    post.IsTrending,
		"views":          post.Views,
		"likes":          post.Likes,
		"tags":           service.SplitTags(post.Tags),
		"created_at":     formatTime(post.CreatedAt),
		"updated_at":     formatTime(post.UpdatedAt),
	}
	if post.Category.ID != 0 {
		view["category"] = categoryView(post.Category)
	}
	if post.Author.ID != 0 {
		view["author"] = profileView(post.Author)
	}
	return view
}

func postViews(posts []db.Post) []gin.H {
	out := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		out = append(out, postView(post))
	}
	return out
}

func commentView(comment db.Comment) gin.H {
	view := gin.H{
		"id":         comment.ID,
		"content":    comment.Content,
		"post_id":    comment.PostID,
		"author_id":  comment.AuthorID,
		"created_at": formatTime(comment.CreatedAt),
		"updated_at": formatTime(comment.UpdatedAt),
	}
	if comment.Author.ID != 0 {
		view["author"] = profileView(comment.Author)
	}
	if comment.Post.ID != 0 {
		view["post"] = gin.H{"title": comment.Post.Title, "slug": comment.Post.Slug}
	}
	return view
}

func pageView(page db.Page) gin.H {
	return gin.H{
		"id":         page.ID,
		"title":      page.Title,
		"slug":       page.Slug,
		"markup":     page.Markup,
		"created_at": formatTime(page.CreatedAt),
		"updated_at": formatTime(page.UpdatedAt),
	}
}
