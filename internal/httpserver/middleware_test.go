package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ginpkg "github.com/gin-gonic/gin"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/httpserver"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logger"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	router.ServeHTTP(w, req)

	reqID := w.Header().Get("X-Request-ID")
	if reqID == "" {
		t.Fatal("X-Request-ID response header is empty, want a generated ID")
	}

	// Generated IDs should be 32 hex chars (16 random bytes encoded)
	const expectedLen = 32
	if len(reqID) != expectedLen {
		t.Errorf("generated request ID length = %d, want %d", len(reqID), expectedLen)
	}
}

func TestRequestIDMiddleware_PreservesExistingID(t *testing.T) {
	t.Parallel()

	const inboundID = "trace-from-upstream-abc123"

	router := ginpkg.New()
	router.Use(httpserver.RequestIDMiddleware())

	var gotGinCtxID string
	router.GET("/test", func(c *ginpkg.Context) {
		if v, ok := c.Get(httpserver.RequestIDKey); ok {
			gotGinCtxID, _ = v.(string)
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", inboundID)
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != inboundID {
		t.Errorf("response X-Request-ID = %q, want %q", got, inboundID)
	}
	if gotGinCtxID != inboundID {
		t.Errorf("gin context request_id = %q, want %q", gotGinCtxID, inboundID)
	}
}

func TestRequestIDMiddleware_RejectsOversizedID(t *testing.T) {
	t.Parallel()

	oversizedID := strings.Repeat("x", 200)
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", oversizedID)
	router.ServeHTTP(w, req)

	gotID := w.Header().Get("X-Request-ID")
	if gotID == oversizedID {
		t.Error("middleware accepted oversized X-Request-ID, want it to generate a new one")
	}
	if gotID == "" {
		t.Error("X-Request-ID response header is empty, want a generated ID")
	}
}

func TestRequestIDMiddleware_UniqueIDs(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	seen := make(map[string]bool)
	for range 20 {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		router.ServeHTTP(w, req)

		id := w.Header().Get("X-Request-ID")
		if seen[id] {
			t.Fatalf("duplicate request ID generated: %q", id)
		}
		seen[id] = true
	}
}

func TestRecoveryMiddleware_Returns500OnPanic(t *testing.T) {
	t.Parallel()

	ginpkg.SetMode(ginpkg.TestMode)
	router := ginpkg.New()
	router.Use(httpserver.RecoveryMiddleware(logger.NewNop()))
	router.GET("/panic", func(_ *ginpkg.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", http.NoBody)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestCORSMiddleware_AllowsConfiguredOrigin(t *testing.T) {
	t.Parallel()

	ginpkg.SetMode(ginpkg.TestMode)
	router := ginpkg.New()
	router.Use(httpserver.CORSMiddleware(httpserver.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://dashboard.example.com"},
	}))
	router.GET("/test", func(c *ginpkg.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Origin", "https://dashboard.example.com")
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://dashboard.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want configured origin", got)
	}
}

func TestCORSMiddleware_PreflightReturnsNoContent(t *testing.T) {
	t.Parallel()

	ginpkg.SetMode(ginpkg.TestMode)
	router := ginpkg.New()
	router.Use(httpserver.CORSMiddleware(httpserver.CORSConfig{Enabled: true}))
	router.POST("/test", func(c *ginpkg.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/test", http.NoBody)
	req.Header.Set("Origin", "https://anywhere.example.com")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

// newTestRouter creates a gin.Engine with RequestIDMiddleware and a simple GET /test route.
func newTestRouter(t *testing.T) *ginpkg.Engine {
	t.Helper()

	ginpkg.SetMode(ginpkg.TestMode)
	router := ginpkg.New()
	router.Use(httpserver.RequestIDMiddleware())
	router.GET("/test", func(c *ginpkg.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}
