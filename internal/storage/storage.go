// Package storage 提供按身份键存取头像二进制对象的能力。
// 每个身份恰好对应一个对象，重新上传时整体覆盖，不保留历史。
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrObjectNotFound 在指定键没有对象时返回
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore 抽象对象桶的最小读写契约。
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, string, error)
}

// LocalStore 把对象写到本地目录，键即文件名。
// 没有配置远端桶时作为默认实现。
type LocalStore struct {
	dir string
}

// NewLocalStore 构造 LocalStore 并确保目录存在。
func NewLocalStore(dir string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Put 整体覆盖写入对象。
func (s *LocalStore) Put(_ context.Context, key, _ string, data []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return fmt.Errorf("write object: %w", err)
	}
	return nil
}

// Get 读取对象内容并嗅探 content type。
func (s *LocalStore) Get(_ context.Context, key string) ([]byte, string, error) {
	if err := validKey(key); err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrObjectNotFound
		}
		return nil, "", fmt.Errorf("read object: %w", err)
	}

	return data, http.DetectContentType(data), nil
}

// validKey 拒绝可能逃出存储目录的键。
func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, "/\\") || key != filepath.Base(key) {
		return fmt.Errorf("storage: invalid key %q", key)
	}
	return nil
}
