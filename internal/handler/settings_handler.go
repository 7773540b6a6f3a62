package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/service"
)

type settingsPayload struct {
	BrandName        string `json:"brand_name"`
	BrandEmail       string `json:"brand_email"`
	BrandPhone       string `json:"brand_phone"`
	OpenRouterAPIKey string `json:"openrouter_api_key"`
	PexelsAPIKey     string `json:"pexels_api_key"`
	HeadScripts      string `json:"head_scripts"`
	BodyScripts      string `json:"body_scripts"`
}

func settingsView(settings service.SiteSettings) gin.H {
	return gin.H{
		"brand_name":         settings.BrandName,
		"brand_email":        settings.BrandEmail,
		"brand_phone":        settings.BrandPhone,
		"openrouter_api_key": settings.OpenRouterAPIKey,
		"pexels_api_key":     settings.PexelsAPIKey,
		"head_scripts":       settings.HeadScripts,
		"body_scripts":       settings.BodyScripts,
	}
}

// ShowSettings 返回后台可编辑的站点设置。
func (a *API) ShowSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取设置失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settingsView(settings)})
}

// UpdateSettings 保存站点设置。
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsPayload
	if !bindJSON(c, &payload, "设置格式不正确") {
		return
	}

	settings, err := a.settings.UpdateSettings(service.SiteSettingsInput{
		BrandName:        payload.BrandName,
		BrandEmail:       payload.BrandEmail,
		BrandPhone:       payload.BrandPhone,
		OpenRouterAPIKey: payload.OpenRouterAPIKey,
		PexelsAPIKey:     payload.PexelsAPIKey,
		HeadScripts:      payload.HeadScripts,
		BodyScripts:      payload.BodyScripts,
	})
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "保存失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settingsView(settings)})
}
