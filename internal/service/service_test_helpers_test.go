package service

import (
	"path/filepath"
	"testing"

	"github.com/inkwell/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "inkwell_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.Profile{},
		&db.Category{},
		&db.Post{},
		&db.PostVisit{},
		&db.Comment{},
		&db.Page{},
		&db.SiteSetting{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}
