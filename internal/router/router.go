package router

import (
	"net/http"

	"github.com/devlinks/internal/config"
	"github.com/devlinks/internal/handler"
	"github.com/devlinks/internal/storage"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionCookieName 是承载会话凭据的 cookie 名称。
const SessionCookieName = "session-token"

// SetupRouter 配置 Gin 引擎和路由。
func SetupRouter(cfg config.AppConfig, gdb *gorm.DB, avatars storage.ObjectStore) *gin.Engine {
	r := gin.Default()

	// 会话 cookie：仅走 HTTPS、同站严格、对脚本不可见，
	// 有效期交给 cookie 存储的默认值管理
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	r.Use(sessions.Sessions(SessionCookieName, store))

	r.LoadHTMLGlob(cfg.TemplateGlob)

	api := handler.NewAPI(gdb, avatars)

	// 未认证即可访问的页面与资源
	r.GET("/sign-in", api.ShowSignInPage)
	r.GET("/sign-up", api.ShowSignUpPage)
	r.GET("/preview/:id", api.ShowShare)
	r.GET("/avatars/:id", api.Avatar)

	r.POST("/api/auth/sign-up", api.SignUp)
	r.POST("/api/auth/sign-in", api.SignIn)

	// 需要认证的页面
	pages := r.Group("")
	pages.Use(api.PageAuthRequired())
	{
		pages.GET("/", api.ShowEditor)
		pages.GET("/preview", api.ShowOwnShare)
	}

	// 需要认证的 API
	authed := r.Group("/api")
	authed.Use(api.AuthRequired())
	{
		authed.POST("/auth/sign-out", api.SignOut)
		authed.GET("/user", api.CurrentUser)
		authed.GET("/links", api.GetLinks)
		authed.PUT("/links", api.UpdateLinks)
		authed.PUT("/profile", api.UpdateProfile)
		authed.POST("/profile/avatar", api.UploadAvatar)
	}

	return r
}
