package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShowDashboard 返回仪表盘统计数据。
func (a *API) ShowDashboard(c *gin.Context) {
	stats, err := a.stats.Overview()
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取统计数据失败")
		return
	}

	authors, err := a.stats.TopAuthors(5)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取统计数据失败")
		return
	}

	perCategory := make([]gin.H, 0, len(stats.PostsPerCategory))
	for _, stat := range stats.PostsPerCategory {
		perCategory = append(perCategory, gin.H{"category": stat.Category, "count": stat.Count})
	}

	perDay := make([]gin.H, 0, len(stats.ViewsPerDay))
	for _, day := range stats.ViewsPerDay {
		perDay = append(perDay, gin.H{"date": day.Date, "views": day.Views})
	}

	topAuthors := make([]gin.H, 0, len(authors))
	for _, author := range authors {
		view := profileView(author.Profile)
		view["total_views"] = author.TotalViews
		view["post_count"] = author.PostCount
		topAuthors = append(topAuthors, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"total_posts":        stats.TotalPosts,
		"total_users":        stats.TotalUsers,
		"total_categories":   stats.TotalCategories,
		"total_comments":     stats.TotalComments,
		"total_views":        stats.TotalViews,
		"recent_posts":       postViews(stats.RecentPosts),
		"popular_posts":      postViews(stats.PopularPosts),
		"trending_posts":     postViews(stats.TrendingPosts),
		"posts_per_category": perCategory,
		"views_per_day":      perDay,
		"top_authors":        topAuthors,
	})
}
