package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/inkwell/internal/service"
)

type categoryPayload struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CreateCategory 创建一个分类。
func (a *API) CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if !bindJSON(c, &payload, "分类格式不正确") {
		return
	}

	category, err := a.categories.Create(service.CategoryInput{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
	})
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

	c.JSON(http.StatusCreated, gin.H{"category": categoryView(*category)})
}

// UpdateCategory 更新一个分类。
func (a *API) UpdateCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的分类 ID")
		return
	}

	var payload categoryPayload
	if !bindJSON(c, &payload, "分类格式不正确") {
		return
	}

	category, err := a.categories.Update(id, service.CategoryInput{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
	})
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			respondError(c, http.StatusBadRequest, verrs.Error())
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "分类不存在")
		default:
			c.Error(err)
			respondError(c, http.StatusInternalServerError, "保存失败，请稍后重试")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": categoryView(*category)})
}

// DeleteCategory 删除一个没有文章的分类。
func (a *API) DeleteCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的分类 ID")
		return
	}

	if err := a.categories.Delete(id); err != nil {
		if errors.Is(err, service.ErrCategoryInUse) {
			respondError(c, http.StatusConflict, "该分类下仍有文章，无法删除")
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "删除失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "分类已删除"})
}
