package handler

import (
	"net/http"

	"github.com/devlinks/internal/db"
	"github.com/devlinks/internal/validate"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondFieldErrors 以统一结构返回字段级校验错误
func respondFieldErrors(c *gin.Context, errs validate.Errors) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// bindRequest 按 Content-Type 选择 JSON 或表单绑定，登录注册两用
func bindRequest(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBind(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// currentIdentity 读取中间件解析出的身份，未经认证的路由上返回空串
func currentIdentity(c *gin.Context) string {
	identity, _ := c.Get(identityContextKey)
	s, _ := identity.(string)
	return s
}

// currentRecord 读取中间件缓存的资料记录，可能为 nil
func currentRecord(c *gin.Context) *db.UserRecord {
	value, _ := c.Get(recordContextKey)
	rec, _ := value.(*db.UserRecord)
	return rec
}
