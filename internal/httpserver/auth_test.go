package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ginpkg "github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/httpserver"
)

const testSecret = "test-secret"

func newAuthRouter(t *testing.T, secret string) *ginpkg.Engine {
	t.Helper()

	ginpkg.SetMode(ginpkg.TestMode)
	router := ginpkg.New()
	group := httpserver.ProtectedGroup(router, "/api/v1", secret)
	group.GET("/leads", func(c *ginpkg.Context) {
		claims, ok := httpserver.GetClaims(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, claims.Sub)
	})
	return router
}

func signToken(t *testing.T, secret, sub string, expiry time.Duration) string {
	t.Helper()

	claims := httpserver.Claims{
		Sub: sub,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(t, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", http.NoBody)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(t, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", http.NoBody)
	req.Header.Set("Authorization", "Basic abc123")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(t, testSecret)
	token := signToken(t, testSecret, "user-42", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Body.String(); got != "user-42" {
		t.Errorf("subject = %q, want %q", got, "user-42")
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(t, testSecret)
	token := signToken(t, "other-secret", "user-42", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(t, testSecret)
	token := signToken(t, testSecret, "user-42", -time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestProtectedGroup_EmptySecretLeavesGroupOpen(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", http.NoBody)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
