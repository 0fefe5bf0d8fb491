package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func authTestRouter(t *testing.T, keyHash string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AdminAuthMiddleware(keyHash, zap.NewNop()))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestAdminAuth(t *testing.T) {
	hash, err := HashAPIKey("letmein")
	if err != nil {
		t.Fatalf("HashAPIKey: %v", err)
	}
	router := authTestRouter(t, hash)

	cases := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid key", "Bearer letmein", http.StatusOK},
		{"wrong key", "Bearer wrongkey", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "letmein", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

func TestAdminAuth_UnconfiguredHash(t *testing.T) {
	router := authTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestVerifyAPIKey(t *testing.T) {
	hash, err := HashAPIKey("secret")
	if err != nil {
		t.Fatalf("HashAPIKey: %v", err)
	}
	if !VerifyAPIKey("secret", hash) {
		t.Fatal("correct key rejected")
	}
	if VerifyAPIKey("other", hash) {
		t.Fatal("wrong key accepted")
	}
}
