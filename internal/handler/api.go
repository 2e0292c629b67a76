package handler

import (
	"github.com/devlinks/internal/service"
	"github.com/devlinks/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db      *gorm.DB
	auth    *service.AuthService
	records *service.RecordService
	avatars storage.ObjectStore
}

const (
	// sessionIdentityKey 是会话里存放账号身份的键
	sessionIdentityKey = "identity"
	// identityContextKey 是中间件解析后写入请求上下文的身份键
	identityContextKey = "__identity"
	// recordContextKey 缓存本次请求解析出的资料记录，避免各处重复取会话
	recordContextKey = "__record"
)

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, avatars storage.ObjectStore) *API {
	return &API{
		db:      gdb,
		auth:    service.NewAuthService(gdb),
		records: service.NewRecordService(gdb),
		avatars: avatars,
	}
}
