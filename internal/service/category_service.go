package service

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still has posts")
)

// CategoryWithCount 在分类上附带文章数量，供公开列表与后台使用。
type CategoryWithCount struct {
	db.Category
	PostCount int
}

// CategoryInput 描述创建或更新分类所需的字段。
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
}

// Validate 校验分类的必填字段。
func (in CategoryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&in.Slug, validation.Required, validation.RuneLength(1, 100)),
	)
}

// CategoryService 提供分类的查询与维护能力。
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService returns a new CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// List returns all categories ordered by name with their post counts.
func (s *CategoryService) List() ([]CategoryWithCount, error) {
	var categories []db.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	counts := map[uint]int{}
	rows := []struct {
		CategoryID uint
		Count      int
	}{}
	err := s.db.Model(&db.Post{}).
		Select("category_id, COUNT(*) AS count").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count posts per category: %w", err)
	}
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}

	out := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		out = append(out, CategoryWithCount{
			Category:  category,
			PostCount: counts[category.ID],
		})
	}
	return out, nil
}

// GetBySlug fetches a single category by slug.
func (s *CategoryService) GetBySlug(slug string) (*db.Category, error) {
	var category db.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create persists a new category.
func (s *CategoryService) Create(input CategoryInput) (*db.Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	category := db.Category{
		Name:        strings.TrimSpace(input.Name),
		Slug:        strings.TrimSpace(input.Slug),
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// Update saves changes to an existing category.
func (s *CategoryService) Update(id uint, input CategoryInput) (*db.Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	category.Name = strings.TrimSpace(input.Name)
	category.Slug = strings.TrimSpace(input.Slug)
	category.Description = strings.TrimSpace(input.Description)
	if err := s.db.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &category, nil
}

// Delete removes a category that no longer has posts attached.
func (s *CategoryService) Delete(id uint) error {
	var postCount int64
	if err := s.db.Model(&db.Post{}).Where("category_id = ?", id).Count(&postCount).Error; err != nil {
		return fmt.Errorf("count category posts: %w", err)
	}
	if postCount > 0 {
		return ErrCategoryInUse
	}

	if err := s.db.Delete(&db.Category{}, id).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
