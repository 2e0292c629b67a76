package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devlinks/internal/db"
)

func postJSON(t *testing.T, engine http.Handler, path string, payload any, cookies []string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.Header.Add("Cookie", cookie)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func sessionCookies(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var cookies []string
	for _, raw := range w.Result().Header.Values("Set-Cookie") {
		cookies = append(cookies, strings.SplitN(raw, ";", 2)[0])
	}
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}
	return cookies
}

func TestSignUpValidationFailsBeforeAnyBackendCall(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()
	engine := newAuthEngine(api)

	w := postJSON(t, engine, "/api/auth/sign-up", map[string]string{
		"email":           "a@b.com",
		"password":        "password1",
		"confirmPassword": "password2",
	}, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := resp.Errors["confirmPassword"]; !ok {
		t.Fatalf("expected error attached to confirmPassword, got %v", resp.Errors)
	}

	// 校验失败的注册不触达存储：不能留下任何账号
	var count int64
	api.db.Model(&db.Account{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no accounts after failed validation, got %d", count)
	}
}

func TestSignUpThenCurrentUser(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()
	engine := newAuthEngine(api)

	w := postJSON(t, engine, "/api/auth/sign-up", map[string]string{
		"email":           "a@b.com",
		"password":        "password1",
		"confirmPassword": "password1",
	}, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		User     db.UserRecord `json:"user"`
		Redirect string        `json:"redirect"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.Redirect != "/sign-in" {
		t.Fatalf("expected redirect to /sign-in, got %q", created.Redirect)
	}

	cookies := sessionCookies(t, w)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	for _, cookie := range cookies {
		req.Header.Add("Cookie", cookie)
	}
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var current struct {
		User db.UserRecord `json:"user"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &current); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if current.User.Identity != created.User.Identity {
		t.Fatalf("expected identity %q, got %q", created.User.Identity, current.User.Identity)
	}
	for platform, value := range current.User.LinkColumns() {
		if value != nil {
			t.Fatalf("expected link field %q absent right after sign-up, got %q", platform, *value)
		}
	}
}

func TestSignInWrongPassword(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()
	engine := newAuthEngine(api)

	postJSON(t, engine, "/api/auth/sign-up", map[string]string{
		"email":           "a@b.com",
		"password":        "password1",
		"confirmPassword": "password1",
	}, nil)

	w := postJSON(t, engine, "/api/auth/sign-in", map[string]string{
		"email":    "a@b.com",
		"password": "wrong-password",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestSignInSuccessRedirectsHome(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()
	engine := newAuthEngine(api)

	postJSON(t, engine, "/api/auth/sign-up", map[string]string{
		"email":           "a@b.com",
		"password":        "password1",
		"confirmPassword": "password1",
	}, nil)

	w := postJSON(t, engine, "/api/auth/sign-in", map[string]string{
		"email":    "a@b.com",
		"password": "password1",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Redirect != "/" {
		t.Fatalf("expected redirect to /, got %q", resp.Redirect)
	}
}

func TestSignOutIsIdempotentAndDropsSession(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()
	engine := newAuthEngine(api)

	w := postJSON(t, engine, "/api/auth/sign-up", map[string]string{
		"email":           "a@b.com",
		"password":        "password1",
		"confirmPassword": "password1",
	}, nil)
	cookies := sessionCookies(t, w)

	out := postJSON(t, engine, "/api/auth/sign-out", nil, cookies)
	if out.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", out.Code)
	}

	// 登出后旧会话不再可用
	cleared := sessionCookies(t, out)
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	for _, cookie := range cleared {
		req.Header.Add("Cookie", cookie)
	}
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 after sign-out, got %d", rr.Code)
	}
}

func TestAuthRequiredWithoutSession(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()
	engine := newAuthEngine(api)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
}
