package db

import "gorm.io/gorm"

// Page represents an admin-authored custom page served at its own route.
type Page struct {
	gorm.Model
	Title  string `gorm:"not null"`
	Slug   string `gorm:"uniqueIndex;not null"`
	Markup string `gorm:"type:text"`
}
