package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func requestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := requestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-Id")
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("generated id %q is not a UUID: %v", id, err)
	}
	if w.Body.String() != id {
		t.Fatalf("context id %q differs from header %q", w.Body.String(), id)
	}
}

func TestRequestIDHonorsClientHeader(t *testing.T) {
	r := requestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "client-id-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "client-id-42" {
		t.Fatalf("client id not honored, got %q", got)
	}
}

func TestRequestIDReplacesOversizeHeader(t *testing.T) {
	r := requestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", strings.Repeat("x", maxRequestIDLen+1))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-Id")
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("oversize header not replaced with a UUID, got %q", id)
	}
}
