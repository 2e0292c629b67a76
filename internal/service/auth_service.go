package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devlinks/internal/db"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrEmailTaken 在注册邮箱已被占用时返回
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials 在邮箱或密码不匹配时统一返回，不区分具体原因
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoSession 在会话凭据无法解析到账号时统一返回
	ErrNoSession = errors.New("no session")
)

// AuthService 负责账号的注册、登录与会话解析。
// 会话凭据本身由 cookie 层持有，这里只做身份到账号与记录的解析。
type AuthService struct {
	db      *gorm.DB
	records *RecordService
}

// NewAuthService 构造 AuthService
func NewAuthService(gdb *gorm.DB) *AuthService {
	return &AuthService{db: gdb, records: NewRecordService(gdb)}
}

// SignUp 依次创建账号和对应的空资料记录。
// 账号创建失败则提前中止，不会留下孤儿记录；
// 账号创建成功而记录创建失败时会留下没有记录的账号，
// 由 ResolveSession 在下次解析时幂等补建。
func (s *AuthService) SignUp(email, password string) (*db.UserRecord, error) {
	normalized := normalizeEmail(email)

	var existing db.Account
	err := s.db.Where("email = ?", normalized).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check account email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := db.Account{
		Identity: uuid.NewString(),
		Email:    normalized,
		Password: string(hashed),
	}
	if err := s.db.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	record := db.UserRecord{
		Identity: account.Identity,
		Email:    &account.Email,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create user record: %w", err)
	}

	return &record, nil
}

// SignIn 用邮箱和密码换取账号身份。
// 失败时统一返回 ErrInvalidCredentials，不留下任何部分状态。
func (s *AuthService) SignIn(email, password string) (*db.Account, error) {
	var account db.Account
	if err := s.db.Where("email = ?", normalizeEmail(email)).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &account, nil
}

// ResolveSession 将会话携带的身份解析为资料记录。
// 凭据缺失、账号不存在等一律折叠为 ErrNoSession，调用方统一跳转登录；
// 账号存在而记录缺失时在此补建空记录（注册半途失败的修复路径）。
func (s *AuthService) ResolveSession(identity string) (*db.UserRecord, error) {
	trimmed := strings.TrimSpace(identity)
	if trimmed == "" {
		return nil, ErrNoSession
	}

	var account db.Account
	if err := s.db.Where("identity = ?", trimmed).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("resolve account: %w", err)
	}

	rec, err := s.records.Get(account.Identity)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrRecordNotFound) {
		return nil, err
	}

	repaired := db.UserRecord{
		Identity: account.Identity,
		Email:    &account.Email,
	}
	if err := s.db.Create(&repaired).Error; err != nil {
		return nil, fmt.Errorf("repair user record: %w", err)
	}
	return &repaired, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
