package service

import (
	"errors"
	"fmt"

	"github.com/devlinks/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound 在指定身份没有资料记录时返回
	ErrRecordNotFound = errors.New("user record not found")
	// ErrUnknownField 在部分更新携带不认识的列时返回
	ErrUnknownField = errors.New("unknown record field")
)

// recordColumns 列出允许被部分更新的列。
// 更新语义是字段子集整体覆盖：未出现的列保持不动，出现的列被新值替换。
var recordColumns = map[string]bool{
	"email":      true,
	"first_name": true,
	"last_name":  true,
	"bio":        true,
	"github":     true,
	"linkedin":   true,
	"twitter":    true,
	"youtube":    true,
	"facebook":   true,
	"instagram":  true,
}

// RecordService 负责按身份读写资料记录。
// 没有乐观锁：两个会话并发写同一条记录时，以字段子集为粒度后写覆盖先写。
type RecordService struct {
	db *gorm.DB
}

// NewRecordService 构造 RecordService
func NewRecordService(gdb *gorm.DB) *RecordService {
	return &RecordService{db: gdb}
}

// Get 按身份做单条查询，记录不存在时返回 ErrRecordNotFound。
// 注册之后记录理应始终存在，但调用方必须容忍缺失。
func (s *RecordService) Get(identity string) (*db.UserRecord, error) {
	var rec db.UserRecord
	if err := s.db.Where("identity = ?", identity).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("get user record: %w", err)
	}
	return &rec, nil
}

// UpdatePartial 将给定字段子集合并进已有记录并返回更新后的完整记录。
// 调用方在本次调用返回之前不能假设本地乐观状态已经落库。
func (s *RecordService) UpdatePartial(identity string, fields map[string]any) (*db.UserRecord, error) {
	for column := range fields {
		if !recordColumns[column] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, column)
		}
	}

	if len(fields) == 0 {
		return s.Get(identity)
	}

	res := s.db.Model(&db.UserRecord{}).Where("identity = ?", identity).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("update user record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}

	return s.Get(identity)
}
