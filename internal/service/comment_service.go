package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrCommentEmpty    = errors.New("comment content is required")
)

// CommentService 提供评论的查询与维护能力。
type CommentService struct {
	db *gorm.DB
}

// NewCommentService returns a new CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// ListByPost returns a post's comments, oldest first.
func (s *CommentService) ListByPost(postID uint) ([]db.Comment, error) {
	var comments []db.Comment
	err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Recent returns the newest comments across all posts, for the dashboard.
func (s *CommentService) Recent(limit int) ([]db.Comment, error) {
	if limit <= 0 {
		limit = 5
	}
	var comments []db.Comment
	err := s.db.Preload("Author").Preload("Post").
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list recent comments: %w", err)
	}
	return comments, nil
}

// Create persists a new comment on a post.
func (s *CommentService) Create(postID, authorID uint, content string) (*db.Comment, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrCommentEmpty
	}

	var post db.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := db.Comment{
		Content:  trimmed,
		PostID:   postID,
		AuthorID: authorID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if err := s.db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(id uint) error {
	if err := s.db.Delete(&db.Comment{}, id).Error; err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
