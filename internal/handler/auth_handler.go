package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/service"
)

const (
	sessionKeyUserID = "user_id"
	sessionKeyRole   = "role"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 处理登录请求并建立会话。
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "请求格式不正确") {
		return
	}

	profile, err := a.profiles.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			respondError(c, http.StatusUnauthorized, "邮箱或密码错误")
			return
		}
		respondError(c, http.StatusInternalServerError, "登录失败，请稍后重试")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyUserID, profile.ID)
	session.Set(sessionKeyRole, profile.Role)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profileView(*profile)})
}

// Logout 清除会话。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

// CurrentUser 返回当前会话对应的用户。
func (a *API) CurrentUser(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}

	profile, err := a.profiles.GetByID(userID)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profileView(*profile)})
}

// AuthRequired 是一个要求已登录会话的中间件。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sessionUserID(c); !ok {
			respondError(c, http.StatusUnauthorized, "请先登录")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired 要求管理员角色。
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		role, _ := session.Get(sessionKeyRole).(string)
		if role != db.RoleAdmin {
			respondError(c, http.StatusForbidden, "没有权限")
			c.Abort()
			return
		}
		c.Next()
	}
}

func sessionUserID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	raw := session.Get(sessionKeyUserID)
	switch v := raw.(type) {
	case uint:
		return v, v != 0
	case int:
		if v > 0 {
			return uint(v), true
		}
	case int64:
		if v > 0 {
			return uint(v), true
		}
	}
	return 0, false
}
