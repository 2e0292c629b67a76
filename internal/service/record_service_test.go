package service

import (
	"errors"
	"testing"

	"github.com/devlinks/internal/db"
)

func seedRecord(t *testing.T, svc *AuthService) *db.UserRecord {
	t.Helper()
	record, err := svc.SignUp("a@b.com", "password1")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	return record
}

func TestRecordGetNotFound(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewRecordService(gdb)
	if _, err := svc.Get("missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUpdatePartialLeavesOtherFieldsUntouched(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	auth := NewAuthService(gdb)
	record := seedRecord(t, auth)

	svc := NewRecordService(gdb)
	if _, err := svc.UpdatePartial(record.Identity, map[string]any{
		"first_name": "Jane",
		"last_name":  "Doe",
		"github":     "https://github.com/jane",
	}); err != nil {
		t.Fatalf("first partial update failed: %v", err)
	}

	// 第二次只更新一个链接字段，其余字段必须保持不动
	updated, err := svc.UpdatePartial(record.Identity, map[string]any{
		"twitter": "https://twitter.com/jane",
	})
	if err != nil {
		t.Fatalf("second partial update failed: %v", err)
	}

	if updated.FirstName == nil || *updated.FirstName != "Jane" {
		t.Fatalf("first_name must survive unrelated partial update, got %v", updated.FirstName)
	}
	if updated.Github == nil || *updated.Github != "https://github.com/jane" {
		t.Fatalf("github must survive unrelated partial update, got %v", updated.Github)
	}
	if updated.Twitter == nil || *updated.Twitter != "https://twitter.com/jane" {
		t.Fatalf("twitter must be overwritten, got %v", updated.Twitter)
	}
	if updated.Email == nil || *updated.Email != "a@b.com" {
		t.Fatalf("email must survive, got %v", updated.Email)
	}
}

func TestUpdatePartialOverwritesWholesale(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	auth := NewAuthService(gdb)
	record := seedRecord(t, auth)

	svc := NewRecordService(gdb)
	if _, err := svc.UpdatePartial(record.Identity, map[string]any{"github": "old"}); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}
	updated, err := svc.UpdatePartial(record.Identity, map[string]any{"github": "new"})
	if err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if updated.Github == nil || *updated.Github != "new" {
		t.Fatalf("expected wholesale overwrite, got %v", updated.Github)
	}
}

func TestUpdatePartialRejectsUnknownField(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	auth := NewAuthService(gdb)
	record := seedRecord(t, auth)

	svc := NewRecordService(gdb)
	if _, err := svc.UpdatePartial(record.Identity, map[string]any{"password": "x"}); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestUpdatePartialMissingRecord(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewRecordService(gdb)
	if _, err := svc.UpdatePartial("missing", map[string]any{"github": "x"}); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUpdatePartialEmptyFieldsIsNoOp(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	auth := NewAuthService(gdb)
	record := seedRecord(t, auth)

	svc := NewRecordService(gdb)
	got, err := svc.UpdatePartial(record.Identity, map[string]any{})
	if err != nil {
		t.Fatalf("empty update failed: %v", err)
	}
	if got.Identity != record.Identity {
		t.Fatalf("expected current record, got %+v", got)
	}
}
