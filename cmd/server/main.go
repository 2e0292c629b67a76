package main

import (
	"context"
	"log"

	"github.com/devlinks/internal/config"
	"github.com/devlinks/internal/db"
	"github.com/devlinks/internal/router"
	"github.com/devlinks/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 本地开发时从 .env 读取配置，文件缺失不算错误
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using environment as-is")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 头像存储：配置了远端桶就用 S3，否则落本地目录
	avatars, err := buildAvatarStore(cfg)
	if err != nil {
		log.Fatalf("failed to initialize avatar storage: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg, db.DB, avatars)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

func buildAvatarStore(cfg config.AppConfig) (storage.ObjectStore, error) {
	if cfg.UseS3() {
		return storage.NewS3Store(context.Background(), storage.S3Config{
			AccountID:       cfg.S3AccountID,
			AccessKeyID:     cfg.S3AccessKeyID,
			AccessKeySecret: cfg.S3AccessKeySecret,
			Bucket:          cfg.AvatarBucket,
		})
	}
	return storage.NewLocalStore(cfg.AvatarDir)
}
