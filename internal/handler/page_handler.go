package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/inkwell/internal/markup"
	"github.com/inkwell/internal/service"
)

type pagePayload struct {
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Markup string `json:"markup"`
}

// ListPages 返回全部自定义页面，最新创建的在前。
func (a *API) ListPages(c *gin.Context) {
	pages, err := a.pages.List()
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取页面失败")
		return
	}

	out := make([]gin.H, 0, len(pages))
	for _, page := range pages {
		out = append(out, pageView(page))
	}
	c.JSON(http.StatusOK, gin.H{"pages": out})
}

// ValidatePageMarkup 仅校验页面内容，不写入任何数据，供编辑器预检。
func (a *API) ValidatePageMarkup(c *gin.Context) {
	var payload pagePayload
	if !bindJSON(c, &payload, "页面格式不正确") {
		return
	}

	if err := markup.Validate(payload.Markup, a.components); err != nil {
		respondError(c, http.StatusBadRequest, "页面内容无法解析: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// CreatePage 校验并保存一个新的自定义页面，随后刷新路由表。
func (a *API) CreatePage(c *gin.Context) {
	var payload pagePayload
	if !bindJSON(c, &payload, "页面格式不正确") {
		return
	}

	page, err := a.pages.Create(service.PageInput{
		Title:  payload.Title,
		Slug:   payload.Slug,
		Markup: payload.Markup,
	})
	if err != nil {
		a.respondPageError(c, err)
		return
	}

	a.reloadRoutes(c)
	c.JSON(http.StatusCreated, gin.H{"page": pageView(*page)})
}

// UpdatePage 校验并保存对自定义页面的修改，随后刷新路由表。
func (a *API) UpdatePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的页面 ID")
		return
	}

	var payload pagePayload
	if !bindJSON(c, &payload, "页面格式不正确") {
		return
	}

	page, err := a.pages.Update(id, service.PageInput{
		Title:  payload.Title,
		Slug:   payload.Slug,
		Markup: payload.Markup,
	})
	if err != nil {
		a.respondPageError(c, err)
		return
	}

	a.reloadRoutes(c)
	c.JSON(http.StatusOK, gin.H{"page": pageView(*page)})
}

// DeletePage 删除一个自定义页面，随后刷新路由表。
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的页面 ID")
		return
	}

	if err := a.pages.Delete(id); err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "删除失败，请稍后重试")
		return
	}

	a.reloadRoutes(c)
	c.JSON(http.StatusOK, gin.H{"message": "页面已删除"})
}

// ReloadPages 手动重建自定义页面路由表。
func (a *API) ReloadPages(c *gin.Context) {
	a.reloadRoutes(c)
	c.JSON(http.StatusOK, gin.H{"routes": a.registry.Len()})
}

func (a *API) reloadRoutes(c *gin.Context) {
	if err := a.registry.Reload(); err != nil {
		// 路由表刷新失败不阻塞写入结果，下次启动仍会重建。
		c.Error(err)
	}
}

func (a *API) respondPageError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		respondError(c, http.StatusBadRequest, verrs.Error())
	case errors.Is(err, service.ErrInvalidPageMarkup):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPageSlugTaken):
		respondError(c, http.StatusConflict, "该路由已被其他页面使用")
	case errors.Is(err, service.ErrPageNotFound):
		respondError(c, http.StatusNotFound, "页面不存在")
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "保存失败，请稍后重试")
	}
}
