package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

// CategoryStat 统计单个分类下的文章数量。
type CategoryStat struct {
	Category string
	Count    int
}

// DailyViews 统计某一天发布文章的累计浏览量。
type DailyViews struct {
	Date  string
	Views int
}

// AuthorStat 统计作者的文章数量与总浏览量。
type AuthorStat struct {
	Profile    db.Profile
	TotalViews int
	PostCount  int
}

// BlogStats 汇总后台仪表盘需要的全部统计数据。
type BlogStats struct {
	TotalPosts       int64
	TotalUsers       int64
	TotalCategories  int64
	TotalComments    int64
	TotalViews       int64
	RecentPosts      []db.Post
	PopularPosts     []db.Post
	TrendingPosts    []db.Post
	PostsPerCategory []CategoryStat
	ViewsPerDay      []DailyViews
}

// StatsService 汇总仪表盘统计数据。
type StatsService struct {
	db *gorm.DB
}

// NewStatsService returns a new StatsService instance.
func NewStatsService(gdb *gorm.DB) *StatsService {
	return &StatsService{db: gdb}
}

// Overview 计算仪表盘所需的各项汇总。
func (s *StatsService) Overview() (BlogStats, error) {
	var stats BlogStats

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&db.Post{}, &stats.TotalPosts},
		{&db.Profile{}, &stats.TotalUsers},
		{&db.Category{}, &stats.TotalCategories},
		{&db.Comment{}, &stats.TotalComments},
	}
	for _, c := range counts {
		if err := s.db.Model(c.model).Count(c.dest).Error; err != nil {
			return stats, fmt.Errorf("count records: %w", err)
		}
	}

	if err := s.db.Model(&db.Post{}).
		Select("COALESCE(SUM(views), 0)").
		Scan(&stats.TotalViews).Error; err != nil {
		return stats, fmt.Errorf("sum views: %w", err)
	}

	var err error
	if stats.RecentPosts, err = s.topPosts("published_at DESC", nil); err != nil {
		return stats, err
	}
	if stats.PopularPosts, err = s.topPosts("views DESC", nil); err != nil {
		return stats, err
	}
	trendingOnly := func(q *gorm.DB) *gorm.DB { return q.Where("is_trending = ?", true) }
	if stats.TrendingPosts, err = s.topPosts("views DESC", trendingOnly); err != nil {
		return stats, err
	}

	if stats.PostsPerCategory, err = s.postsPerCategory(); err != nil {
		return stats, err
	}
	if stats.ViewsPerDay, err = s.viewsPerDay(time.Now()); err != nil {
		return stats, err
	}

	return stats, nil
}

func (s *StatsService) topPosts(order string, scope func(*gorm.DB) *gorm.DB) ([]db.Post, error) {
	query := s.db.Preload("Category").Preload("Author").Order(order).Limit(5)
	if scope != nil {
		query = scope(query)
	}
	var posts []db.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list top posts: %w", err)
	}
	return posts, nil
}

func (s *StatsService) postsPerCategory() ([]CategoryStat, error) {
	rows := []struct {
		Name  string
		Count int
	}{}
	err := s.db.Model(&db.Category{}).
		Select("categories.name AS name, COUNT(posts.id) AS count").
		Joins("LEFT JOIN posts ON posts.category_id = categories.id AND posts.deleted_at IS NULL").
		Group("categories.id").
		Order("categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("posts per category: %w", err)
	}

	out := make([]CategoryStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, CategoryStat{Category: row.Name, Count: row.Count})
	}
	return out, nil
}

// viewsPerDay 汇总最近 7 天内发布文章的浏览量，按发布日期归档。
func (s *StatsService) viewsPerDay(now time.Time) ([]DailyViews, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	perDay := map[string]int{}
	days := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format("2006-01-02")
		perDay[key] = 0
		days = append(days, key)
	}

	var posts []db.Post
	if err := s.db.Select("views, published_at").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("load posts for daily views: %w", err)
	}
	for _, post := range posts {
		if post.PublishedAt.IsZero() {
			continue
		}
		key := post.PublishedAt.Format("2006-01-02")
		if _, ok := perDay[key]; ok {
			perDay[key] += post.Views
		}
	}

	out := make([]DailyViews, 0, len(days))
	for _, day := range days {
		out = append(out, DailyViews{Date: day, Views: perDay[day]})
	}
	return out, nil
}

// TopAuthors 按总浏览量（其次文章数）返回最活跃的作者。
func (s *StatsService) TopAuthors(limit int) ([]AuthorStat, error) {
	if limit <= 0 {
		limit = 5
	}

	var posts []db.Post
	if err := s.db.Preload("Author").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("load posts for top authors: %w", err)
	}

	byAuthor := map[uint]*AuthorStat{}
	for _, post := range posts {
		if post.AuthorID == 0 {
			continue
		}
		stat, ok := byAuthor[post.AuthorID]
		if !ok {
			stat = &AuthorStat{Profile: post.Author}
			byAuthor[post.AuthorID] = stat
		}
		stat.TotalViews += post.Views
		stat.PostCount++
	}

	out := make([]AuthorStat, 0, len(byAuthor))
	for _, stat := range byAuthor {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalViews != out[j].TotalViews {
			return out[i].TotalViews > out[j].TotalViews
		}
		return out[i].PostCount > out[j].PostCount
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
