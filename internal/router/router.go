package router

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("inkwell_session", store))

	api := handler.NewAPI(db.DB)

	// 自定义页面路由表在启动时构建一次；拉取失败时保持为空，
	// 不影响其余路由正常工作。
	if err := api.Registry().Reload(); err != nil {
		log.Printf("custom pages unavailable: %v", err)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 公开接口
	public := r.Group("/api")
	{
		public.POST("/login", api.Login)
		public.POST("/logout", api.Logout)
		public.GET("/me", api.CurrentUser)

		public.GET("/posts", api.ListPosts)
		public.GET("/posts/:slug", api.ShowPost)
		public.POST("/posts/:slug/like", api.LikePost)
		public.GET("/posts/:slug/comments", api.ListComments)
		public.POST("/posts/:slug/comments", handler.AuthRequired(), api.CreateComment)

		public.GET("/categories", api.ListCategories)
		public.GET("/settings", api.ShowPublicSettings)
	}

	// 后台管理接口
	admin := r.Group("/admin/api")
	admin.Use(handler.AuthRequired(), handler.AdminRequired())
	{
		admin.GET("/dashboard", api.ShowDashboard)

		admin.GET("/posts", api.AdminListPosts)
		admin.POST("/posts", api.CreatePost)
		admin.PUT("/posts/:id", api.UpdatePost)
		admin.DELETE("/posts/:id", api.DeletePost)

		admin.GET("/categories", api.ListCategories)
		admin.POST("/categories", api.CreateCategory)
		admin.PUT("/categories/:id", api.UpdateCategory)
		admin.DELETE("/categories/:id", api.DeleteCategory)

		admin.GET("/comments", api.RecentComments)
		admin.DELETE("/comments/:id", api.DeleteComment)

		admin.GET("/profiles", api.ListProfiles)
		admin.DELETE("/profiles/:id", api.DeleteProfile)

		admin.GET("/settings", api.ShowSettings)
		admin.PUT("/settings", api.UpdateSettings)

		admin.POST("/ai/generate", api.GenerateContent)
		admin.GET("/images/search", api.SearchImages)

		admin.GET("/pages", api.ListPages)
		admin.POST("/pages", api.CreatePage)
		admin.POST("/pages/validate", api.ValidatePageMarkup)
		admin.POST("/pages/reload", api.ReloadPages)
		admin.PUT("/pages/:id", api.UpdatePage)
		admin.DELETE("/pages/:id", api.DeletePage)
	}

	// 其余路径全部交给自定义页面注册表解析
	r.NoRoute(api.ShowCustomPage)

	return r
}
