package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// RecentComments 返回仪表盘使用的最新评论。
func (a *API) RecentComments(c *gin.Context) {
	limit := 5
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	comments, err := a.comments.Recent(limit)
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

// DeleteComment 删除一条评论。
func (a *API) DeleteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的评论 ID")
		return
	}

	if err := a.comments.Delete(id); err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "删除失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "评论已删除"})
}
