package db

import (
	"time"

	"gorm.io/gorm"
)

// Post 定义了文章模型
type Post struct {
	gorm.Model
	Title         string `gorm:"not null"`
	Slug          string `gorm:"uniqueIndex;not null"`
	Content       string `gorm:"type:text"`
	Excerpt       string
	FeaturedImage string
	CategoryID    uint
	Category      Category
	AuthorID      uint
	Author        Profile `gorm:"foreignKey:AuthorID"`
	PublishedAt   time.Time
	IsTrending    bool
	Views         int `gorm:"not null;default:0"`
	Likes         int `gorm:"not null;default:0"`
	Tags          string
}

// PostVisit 记录访客与文章的一次去重访问，用于避免重复计数浏览量。
type PostVisit struct {
	gorm.Model
	PostID    uint   `gorm:"index:idx_post_visitor,unique;not null"`
	VisitorID string `gorm:"index:idx_post_visitor,unique;not null"`
}
