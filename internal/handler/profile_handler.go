package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListProfiles 返回全部用户资料。
func (a *API) ListProfiles(c *gin.Context) {
	profiles, err := a.profiles.List()
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取用户失败")
		return
	}

	out := make([]gin.H, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, profileView(profile))
	}
	c.JSON(http.StatusOK, gin.H{"profiles": out})
}

// DeleteProfile 删除一个用户及其评论。
func (a *API) DeleteProfile(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的用户 ID")
		return
	}

	if current, ok := sessionUserID(c); ok && current == id {
		respondError(c, http.StatusBadRequest, "不能删除当前登录账号")
		return
	}

	if err := a.profiles.Delete(id); err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "删除失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "用户已删除"})
}
