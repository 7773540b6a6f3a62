package db

import "gorm.io/gorm"

// Comment 定义了文章评论模型
type Comment struct {
	gorm.Model
	Content  string `gorm:"type:text;not null"`
	PostID   uint   `gorm:"index;not null"`
	Post     Post
	AuthorID uint
	Author   Profile `gorm:"foreignKey:AuthorID"`
}
