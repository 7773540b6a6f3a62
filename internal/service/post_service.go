package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
	SortViews   = "views"
)

// PostFilter 描述文章列表的筛选条件。
type PostFilter struct {
	CategoryID uint
	Search     string
	SortBy     string
	Limit      int
}

// PostInput 描述创建或更新文章所需的字段。
type PostInput struct {
	Title         string
	Slug          string
	Content       string
	Excerpt       string
	FeaturedImage string
	CategoryID    uint
	AuthorID      uint
	PublishedAt   time.Time
	IsTrending    bool
	Tags          []string
}

// Validate 校验文章的必填字段。
func (in PostInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, 300)),
		validation.Field(&in.Slug, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&in.Content, validation.Required),
	)
}

// PostService 提供文章的查询与维护能力。
type PostService struct {
	db *gorm.DB
}

// NewPostService returns a new PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// List returns posts matching the filter, with category and author preloaded.
func (s *PostService) List(filter PostFilter) ([]db.Post, error) {
	query := s.db.Model(&db.Post{}).Preload("Category").Preload("Author")

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}

	switch filter.SortBy {
	case SortOldest:
		query = query.Order("published_at ASC")
	case SortPopular:
		query = query.Order("likes DESC")
	case SortViews:
		query = query.Order("views DESC")
	default:
		query = query.Order("published_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var posts []db.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetBySlug fetches a single post by slug.
func (s *PostService) GetBySlug(slug string) (*db.Post, error) {
	var post db.Post
	err := s.db.Preload("Category").Preload("Author").Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetByID fetches a single post by primary key.
func (s *PostService) GetByID(id uint) (*db.Post, error) {
	var post db.Post
	err := s.db.Preload("Category").Preload("Author").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// RecordView 为一位访客记录一次文章浏览；同一访客重复访问不会重复计数。
func (s *PostService) RecordView(postID uint, visitorID string) error {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return s.incrementViews(postID)
	}

	visit := db.PostVisit{PostID: postID, VisitorID: visitorID}
	result := s.db.Where(&visit).FirstOrCreate(&visit)
	if result.Error != nil {
		return fmt.Errorf("record visit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil
	}
	return s.incrementViews(postID)
}

func (s *PostService) incrementViews(postID uint) error {
	err := s.db.Model(&db.Post{}).Where("id = ?", postID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// Like 为文章点赞数加一。
func (s *PostService) Like(postID uint) error {
	result := s.db.Model(&db.Post{}).Where("id = ?", postID).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		return fmt.Errorf("like post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Create persists a new post.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	publishedAt := input.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now()
	}

	post := db.Post{
		Title:         strings.TrimSpace(input.Title),
		Slug:          strings.TrimSpace(input.Slug),
		Content:       input.Content,
		Excerpt:       strings.TrimSpace(input.Excerpt),
		FeaturedImage: strings.TrimSpace(input.FeaturedImage),
		CategoryID:    input.CategoryID,
		AuthorID:      input.AuthorID,
		PublishedAt:   publishedAt,
		IsTrending:    input.IsTrending,
		Tags:          joinTags(input.Tags),
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.GetByID(post.ID)
}

// Update saves changes to an existing post.
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	post, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(input.Title)
	post.Slug = strings.TrimSpace(input.Slug)
	post.Content = input.Content
	post.Excerpt = strings.TrimSpace(input.Excerpt)
	post.FeaturedImage = strings.TrimSpace(input.FeaturedImage)
	post.CategoryID = input.CategoryID
	post.IsTrending = input.IsTrending
	if !input.PublishedAt.IsZero() {
		post.PublishedAt = input.PublishedAt
	}
	post.Tags = joinTags(input.Tags)

	if err := s.db.Save(post).Error; err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a post and its comments.
func (s *PostService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&db.Comment{}).Error; err != nil {
			return fmt.Errorf("delete post comments: %w", err)
		}
		if err := tx.Delete(&db.Post{}, id).Error; err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
}

func joinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return strings.Join(cleaned, ",")
}

// SplitTags 将存储的标签列还原为切片。
func SplitTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
