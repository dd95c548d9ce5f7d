package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dujiao-next/market/internal/authz"
	"github.com/dujiao-next/market/internal/cache"
	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/i18n"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

type stubTokenService struct {
	claims *service.JWTClaims
	state  *cache.UserAuthState
}

func (s *stubTokenService) ParseJWT(tokenString string) (*service.JWTClaims, error) {
	if tokenString != "good-token" {
		return nil, errors.New("bad token")
	}
	return s.claims, nil
}

func (s *stubTokenService) ResolveAuthState(ctx context.Context, userID uint) (*cache.UserAuthState, error) {
	if s.state == nil || s.state.UserID != userID {
		return nil, service.ErrNotFound
	}
	return s.state, nil
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func i18nEN(key string) string {
	return i18n.T(i18n.LocaleEN, key)
}

func newSessionEngine(tokens AuthTokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(JWTAuthMiddleware("secret", tokens))
	r.GET("/me", func(c *gin.Context) {
		session := shared.SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{"status_code": 0, "data": session})
	})
	return r
}

func TestJWTAuthMiddlewareBuildsSession(t *testing.T) {
	tokens := &stubTokenService{
		claims: &service.JWTClaims{UserID: 7, TokenVersion: 2},
		state:  &cache.UserAuthState{UserID: 7, Role: "seller", Status: constants.UserStatusActive, TokenVersion: 2},
	}
	r := newSessionEngine(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	req.Header.Set(requestIDHeader, "req-session")
	r.ServeHTTP(w, req)

	resp := decodeEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	var session service.Session
	if err := json.Unmarshal(resp.Data, &session); err != nil {
		t.Fatalf("unmarshal session failed: %v", err)
	}
	if session.UserID != 7 || session.Role != constants.RoleSeller || session.RequestID != "req-session" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestJWTAuthMiddlewareRejects(t *testing.T) {
	cases := []struct {
		name   string
		header string
		state  *cache.UserAuthState
		msg    string
	}{
		{name: "missing header", header: "", state: nil, msg: "error.auth_header_missing"},
		{name: "bad scheme", header: "Token good-token", state: nil, msg: "error.auth_header_invalid"},
		{name: "bad token", header: "Bearer nope", state: nil, msg: "error.token_invalid"},
		{name: "unknown user", header: "Bearer good-token", state: nil, msg: "error.token_invalid"},
		{
			name:   "disabled",
			header: "Bearer good-token",
			state:  &cache.UserAuthState{UserID: 7, Role: "user", Status: constants.UserStatusDisabled, TokenVersion: 1},
			msg:    "error.user_disabled",
		},
		{
			name:   "revoked",
			header: "Bearer good-token",
			state:  &cache.UserAuthState{UserID: 7, Role: "user", Status: constants.UserStatusActive, TokenVersion: 2},
			msg:    "error.token_revoked",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens := &stubTokenService{claims: &service.JWTClaims{UserID: 7, TokenVersion: 1}, state: tc.state}
			r := newSessionEngine(tokens)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("X-Locale", "en-US")
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			resp := decodeEnvelope(t, w)
			if resp.StatusCode != 401 {
				t.Fatalf("status_code want 401 got %d", resp.StatusCode)
			}
			if want := i18nEN(tc.msg); resp.Msg != want {
				t.Fatalf("msg want %q got %q", want, resp.Msg)
			}
		})
	}
}

func setupRBACTest(t *testing.T) *authz.Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	return svc
}

func TestRoleRBACMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := setupRBACTest(t)

	newEngine := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			shared.SetSession(c, &service.Session{UserID: 1, Role: role})
		})
		r.Use(RoleRBACMiddleware(svc))
		ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status_code": 0}) }
		r.GET("/api/v1/cart", ok)
		r.PATCH("/api/v1/seller/stores/:store_id/order-groups/:id/status", ok)
		r.GET("/api/v1/admin/stores", ok)
		return r
	}

	cases := []struct {
		role   string
		method string
		path   string
		want   int
	}{
		{constants.RoleUser, http.MethodGet, "/api/v1/cart", 0},
		{constants.RoleUser, http.MethodPatch, "/api/v1/seller/stores/1/order-groups/2/status", 403},
		{constants.RoleSeller, http.MethodPatch, "/api/v1/seller/stores/1/order-groups/2/status", 0},
		{constants.RoleSeller, http.MethodGet, "/api/v1/admin/stores", 403},
		{constants.RoleAdmin, http.MethodGet, "/api/v1/admin/stores", 0},
		{constants.RoleAdmin, http.MethodGet, "/api/v1/cart", 0},
	}
	for _, tc := range cases {
		r := newEngine(tc.role)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		resp := decodeEnvelope(t, w)
		if resp.StatusCode != tc.want {
			t.Fatalf("%s %s %s: status_code want %d got %d", tc.role, tc.method, tc.path, tc.want, resp.StatusCode)
		}
	}
}

func TestRoleRBACMiddlewareWithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := setupRBACTest(t)
	r := gin.New()
	r.Use(RoleRBACMiddleware(svc))
	r.GET("/api/v1/cart", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status_code": 0}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	if resp := decodeEnvelope(t, w); resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}
