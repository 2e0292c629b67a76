package handler

import (
	"errors"
	"net/http"

	"github.com/devlinks/internal/db"
	"github.com/devlinks/internal/service"
	"github.com/devlinks/internal/validate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// SignUp 处理注册请求：校验、建账号、建空记录、随即建立会话。
// 校验不通过的请求在这里就被拦下，不会触达任何存储调用。
func (a *API) SignUp(c *gin.Context) {
	var payload credentialsRequest
	if !bindRequest(c, &payload, "请填写注册信息") {
		return
	}

	errs := validate.Check(validate.SignUp, validate.Credentials{
		Email:           payload.Email,
		Password:        payload.Password,
		ConfirmPassword: payload.ConfirmPassword,
	})
	if !errs.Valid() {
		respondFieldErrors(c, errs)
		return
	}

	record, err := a.auth.SignUp(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondError(c, http.StatusConflict, "该邮箱已注册")
			return
		}
		respondError(c, http.StatusInternalServerError, "注册失败，请稍后再试")
		return
	}

	if err := establishSession(c, record.Identity); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":     record,
		"redirect": "/sign-in",
	})
}

// SignIn 处理登录请求，成功后把身份写入会话 cookie。
// 失败时不留下任何部分状态。
func (a *API) SignIn(c *gin.Context) {
	var payload credentialsRequest
	if !bindRequest(c, &payload, "请填写登录信息") {
		return
	}

	errs := validate.Check(validate.SignIn, validate.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if !errs.Valid() {
		respondFieldErrors(c, errs)
		return
	}

	account, err := a.auth.SignIn(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "邮箱或密码错误")
			return
		}
		respondError(c, http.StatusInternalServerError, "登录失败，请稍后再试")
		return
	}

	if err := establishSession(c, account.Identity); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	record, err := a.auth.ResolveSession(account.Identity)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "登录失败，请稍后再试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     record,
		"redirect": "/",
	})
}

// SignOut 清除本地会话，幂等；服务端清理失败也一律吞掉。
func (a *API) SignOut(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.JSON(http.StatusOK, gin.H{"redirect": "/sign-in"})
}

// CurrentUser 返回会话对应的资料记录。
func (a *API) CurrentUser(c *gin.Context) {
	if rec := currentRecord(c); rec != nil {
		c.JSON(http.StatusOK, gin.H{"user": rec})
		return
	}

	rec, err := a.auth.ResolveSession(currentIdentity(c))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": rec})
}

// AuthRequired 是 API 路由的认证中间件。
// 每次请求只解析一次会话，身份与记录放进上下文供后续使用；
// 凭据缺失或解析失败统一返回 401，不区分具体原因。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := a.resolveSession(c)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "请先登录")
			c.Abort()
			return
		}
		c.Set(identityContextKey, rec.Identity)
		c.Set(recordContextKey, rec)
		c.Next()
	}
}

// PageAuthRequired 是页面路由的认证中间件，失败时跳转登录页。
func (a *API) PageAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := a.resolveSession(c)
		if err != nil {
			c.Redirect(http.StatusFound, "/sign-in")
			c.Abort()
			return
		}
		c.Set(identityContextKey, rec.Identity)
		c.Set(recordContextKey, rec)
		c.Next()
	}
}

func (a *API) resolveSession(c *gin.Context) (*db.UserRecord, error) {
	session := sessions.Default(c)
	identity, _ := session.Get(sessionIdentityKey).(string)
	return a.auth.ResolveSession(identity)
}

func establishSession(c *gin.Context, identity string) error {
	session := sessions.Default(c)
	session.Set(sessionIdentityKey, identity)
	return session.Save()
}
