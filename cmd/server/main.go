package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/config"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 按需创建初始管理员账号
	if err := db.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to ensure admin account: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
