package service

import (
	"testing"
	"time"

	"github.com/inkwell/internal/db"
)

func TestOverviewAggregatesTotals(t *testing.T) {
	gdb := setupServiceTestDB(t)

	category := db.Category{Name: "Tech", Slug: "tech"}
	if err := gdb.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	author := db.Profile{Name: "Ada", Email: "ada@example.com", Password: "x"}
	if err := gdb.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author: %v", err)
	}

	now := time.Now()
	posts := []db.Post{
		{Title: "A", Slug: "a", Content: "x", CategoryID: category.ID, AuthorID: author.ID, Views: 10, PublishedAt: now},
		{Title: "B", Slug: "b", Content: "x", CategoryID: category.ID, AuthorID: author.ID, Views: 5, PublishedAt: now, IsTrending: true},
	}
	for i := range posts {
		if err := gdb.Create(&posts[i]).Error; err != nil {
			t.Fatalf("failed to seed post: %v", err)
		}
	}
	comment := db.Comment{Content: "hi", PostID: posts[0].ID, AuthorID: author.ID}
	if err := gdb.Create(&comment).Error; err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}

	svc := NewStatsService(gdb)
	stats, err := svc.Overview()
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}

	if stats.TotalPosts != 2 || stats.TotalUsers != 1 || stats.TotalCategories != 1 || stats.TotalComments != 1 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.TotalViews != 15 {
		t.Fatalf("expected 15 total views, got %d", stats.TotalViews)
	}
	if len(stats.PopularPosts) == 0 || stats.PopularPosts[0].Title != "A" {
		t.Fatalf("expected most viewed post first, got %+v", stats.PopularPosts)
	}
	if len(stats.TrendingPosts) != 1 || stats.TrendingPosts[0].Title != "B" {
		t.Fatalf("expected only trending posts, got %+v", stats.TrendingPosts)
	}
	if len(stats.PostsPerCategory) != 1 || stats.PostsPerCategory[0].Count != 2 {
		t.Fatalf("unexpected per-category stats: %+v", stats.PostsPerCategory)
	}
	if len(stats.ViewsPerDay) != 7 {
		t.Fatalf("expected 7 daily buckets, got %d", len(stats.ViewsPerDay))
	}
	if stats.ViewsPerDay[6].Views != 15 {
		t.Fatalf("expected today's bucket to hold all views, got %+v", stats.ViewsPerDay[6])
	}
}

func TestTopAuthorsOrdersByViews(t *testing.T) {
	gdb := setupServiceTestDB(t)

	ada := db.Profile{Name: "Ada", Email: "ada@example.com", Password: "x"}
	bob := db.Profile{Name: "Bob", Email: "bob@example.com", Password: "x"}
	for _, p := range []*db.Profile{&ada, &bob} {
		if err := gdb.Create(p).Error; err != nil {
			t.Fatalf("failed to seed profile: %v", err)
		}
	}

	posts := []db.Post{
		{Title: "A1", Slug: "a1", Content: "x", AuthorID: ada.ID, Views: 5},
		{Title: "B1", Slug: "b1", Content: "x", AuthorID: bob.ID, Views: 50},
		{Title: "B2", Slug: "b2", Content: "x", AuthorID: bob.ID, Views: 1},
	}
	for i := range posts {
		if err := gdb.Create(&posts[i]).Error; err != nil {
			t.Fatalf("failed to seed post: %v", err)
		}
	}

	svc := NewStatsService(gdb)
	authors, err := svc.TopAuthors(5)
	if err != nil {
		t.Fatalf("TopAuthors returned error: %v", err)
	}

	if len(authors) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(authors))
	}
	if authors[0].Profile.Name != "Bob" || authors[0].TotalViews != 51 || authors[0].PostCount != 2 {
		t.Fatalf("unexpected top author: %+v", authors[0])
	}
}
