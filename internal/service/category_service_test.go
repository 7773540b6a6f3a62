package service

import (
	"errors"
	"testing"

	"github.com/inkwell/internal/db"
)

func TestListCategoriesIncludesPostCounts(t *testing.T) {
	gdb := setupServiceTestDB(t)

	svc := NewCategoryService(gdb)
	tech, err := svc.Create(CategoryInput{Name: "Tech", Slug: "tech"})
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "Life", Slug: "life"}); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	for i := 0; i < 2; i++ {
		post := db.Post{Title: "t", Slug: string(rune('a' + i)), Content: "b", CategoryID: tech.ID}
		if err := gdb.Create(&post).Error; err != nil {
			t.Fatalf("failed to seed post: %v", err)
		}
	}

	categories, err := svc.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	// 按名称排序：Life 在前，Tech 在后。
	if categories[0].Name != "Life" || categories[0].PostCount != 0 {
		t.Fatalf("unexpected first category: %+v", categories[0])
	}
	if categories[1].Name != "Tech" || categories[1].PostCount != 2 {
		t.Fatalf("unexpected second category: %+v", categories[1])
	}
}

func TestDeleteCategoryRefusesWhenInUse(t *testing.T) {
	gdb := setupServiceTestDB(t)

	svc := NewCategoryService(gdb)
	category, err := svc.Create(CategoryInput{Name: "Tech", Slug: "tech"})
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	post := db.Post{Title: "t", Slug: "t", Content: "b", CategoryID: category.ID}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := gdb.Delete(&post).Error; err != nil {
		t.Fatalf("failed to delete post: %v", err)
	}
	if err := svc.Delete(category.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	gdb := setupServiceTestDB(t)

	svc := NewCategoryService(gdb)
	if _, err := svc.Update(42, CategoryInput{Name: "X", Slug: "x"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
