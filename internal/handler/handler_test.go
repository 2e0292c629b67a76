package handler

import (
	"net/http"
	"testing"

	"github.com/devlinks/internal/db"
	"github.com/devlinks/internal/storage"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestAPI(t *testing.T) (*API, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.Account{}, &db.UserRecord{}); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	avatars, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create avatar store: %v", err)
	}

	api := NewAPI(gdb, avatars)
	return api, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

// newAuthEngine 挂上会话中间件并注册认证相关路由，
// 结构与生产路由保持一致。
func newAuthEngine(api *API) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, Secure: true, SameSite: http.SameSiteStrictMode})
	r.Use(sessions.Sessions("session-token", store))

	r.POST("/api/auth/sign-up", api.SignUp)
	r.POST("/api/auth/sign-in", api.SignIn)

	authed := r.Group("/api")
	authed.Use(api.AuthRequired())
	{
		authed.POST("/auth/sign-out", api.SignOut)
		authed.GET("/user", api.CurrentUser)
		authed.PUT("/links", api.UpdateLinks)
	}

	return r
}

// seedContext 为不经过中间件的处理器测试填充身份上下文。
func seedContext(c *gin.Context, rec *db.UserRecord) {
	c.Set(identityContextKey, rec.Identity)
	c.Set(recordContextKey, rec)
}
