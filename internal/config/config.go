package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	SessionSecret string
	GinMode       string
	TemplateGlob  string
	AvatarDir     string
	SiteBaseURL   string

	// S3 兼容对象存储配置，四项齐全时头像改存远端桶
	AvatarBucket      string
	S3AccountID       string
	S3AccessKeyID     string
	S3AccessKeySecret string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "devlinks.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "devlinks-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	templateGlob := strings.TrimSpace(os.Getenv("TEMPLATE_GLOB"))
	if templateGlob == "" {
		templateGlob = "web/template/*.html"
	}

	avatarDir := strings.TrimSpace(os.Getenv("AVATAR_DIR"))
	if avatarDir == "" {
		avatarDir = "data/avatars"
	}

	siteBaseURL := strings.TrimSpace(os.Getenv("SITE_BASE_URL"))
	if siteBaseURL == "" {
		siteBaseURL = fmt.Sprintf("http://localhost:%s", port)
	}

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabasePath:      databasePath,
		SessionSecret:     sessionSecret,
		GinMode:           ginMode,
		TemplateGlob:      templateGlob,
		AvatarDir:         avatarDir,
		SiteBaseURL:       siteBaseURL,
		AvatarBucket:      strings.TrimSpace(os.Getenv("AVATAR_BUCKET")),
		S3AccountID:       strings.TrimSpace(os.Getenv("S3_ACCOUNT_ID")),
		S3AccessKeyID:     strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
		S3AccessKeySecret: strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_SECRET")),
	}
}

// UseS3 判断是否具备启用远端对象存储的全部凭据。
func (c AppConfig) UseS3() bool {
	return c.AvatarBucket != "" && c.S3AccountID != "" && c.S3AccessKeyID != "" && c.S3AccessKeySecret != ""
}
