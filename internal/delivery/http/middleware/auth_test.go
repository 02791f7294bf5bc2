package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type stubVerifier map[string]int64

func (s stubVerifier) VerifyToken(ctx context.Context, token string) (int64, error) {
	if token == "broken" {
		return 0, errors.New("redis down")
	}
	id, ok := s[token]
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	return id, nil
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m := NewAuthMiddleware(stubVerifier{"good": 42}, logger)

	r := gin.New()
	r.Use(RequestID(), Logger(logger))
	r.GET("/private", m.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "token": Token(c)})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	r := newTestEngine()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "Bearer good", want: http.StatusOK},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", want: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bad", want: http.StatusUnauthorized},
		{name: "verifier failure", header: "Bearer broken", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("Expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
			if tt.want == http.StatusOK && w.Body.String() != `{"token":"good","user_id":42}` {
				t.Errorf("Unexpected body %s", w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("Expected generated request id")
	}

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("Expected client request id to be kept, got %q", got)
	}
}
