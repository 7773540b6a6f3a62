package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/markup"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound  = errors.New("page not found")
	ErrPageSlugTaken = errors.New("page slug already in use")
	// ErrInvalidPageMarkup 表示页面内容未通过语法校验，底层的解析错误会被一并包装。
	ErrInvalidPageMarkup = errors.New("invalid page markup")
)

var pageSlugPattern = regexp.MustCompile(`^/?[A-Za-z0-9][A-Za-z0-9\-_/]*$`)

// PageInput 描述创建或更新自定义页面所需的字段。
type PageInput struct {
	Title  string
	Slug   string
	Markup string
}

// Validate 校验标题与路由格式，页面内容的语法校验由 markup 包负责。
func (in PageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&in.Slug, validation.Required, validation.Match(pageSlugPattern)),
		validation.Field(&in.Markup, validation.Required),
	)
}

// PageService provides CRUD access to admin-authored custom pages. Markup is
// validated against the shared grammar before any write reaches the store;
// the renderer still re-validates at request time.
type PageService struct {
	db       *gorm.DB
	registry *markup.Registry
}

// NewPageService returns a new PageService bound to the production component
// registry used by the renderer.
func NewPageService(gdb *gorm.DB, reg *markup.Registry) *PageService {
	if reg == nil {
		reg = markup.NewRegistry()
	}
	return &PageService{db: gdb, registry: reg}
}

// Registry exposes the component registry shared with the renderer.
func (s *PageService) Registry() *markup.Registry {
	return s.registry
}

// List returns all custom pages, newest created first.
func (s *PageService) List() ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Order("created_at DESC, id DESC").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// GetBySlug fetches a page for a given slug, tolerating a missing or extra
// leading slash.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	normalized := NormalizeRoute(slug)
	var page db.Page
	err := s.db.Where("slug = ? OR slug = ?", normalized, "/"+normalized).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetByID fetches a page by primary key.
func (s *PageService) GetByID(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Create validates the input and persists a new page. Invalid markup blocks
// the write entirely.
func (s *PageService) Create(input PageInput) (*db.Page, error) {
	if err := s.checkInput(input); err != nil {
		return nil, err
	}

	page := db.Page{
		Title:  strings.TrimSpace(input.Title),
		Slug:   strings.TrimSpace(input.Slug),
		Markup: input.Markup,
	}
	if err := s.db.Create(&page).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrPageSlugTaken
		}
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &page, nil
}

// Update validates the input and saves changes to an existing page.
func (s *PageService) Update(id uint, input PageInput) (*db.Page, error) {
	if err := s.checkInput(input); err != nil {
		return nil, err
	}

	page, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	page.Title = strings.TrimSpace(input.Title)
	page.Slug = strings.TrimSpace(input.Slug)
	page.Markup = input.Markup
	if err := s.db.Save(page).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrPageSlugTaken
		}
		return nil, fmt.Errorf("update page: %w", err)
	}
	return page, nil
}

// Delete removes a page. Deleting an id that is already gone is a no-op.
func (s *PageService) Delete(id uint) error {
	if err := s.db.Delete(&db.Page{}, id).Error; err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}

func (s *PageService) checkInput(input PageInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if err := markup.Validate(input.Markup, s.registry); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPageMarkup, err)
	}
	return nil
}

// NormalizeRoute 去除路由前导斜杠与空白，作为注册表的统一键。
func NormalizeRoute(slug string) string {
	return strings.TrimLeft(strings.TrimSpace(slug), "/")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "constraint")
}
