package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTenant_HeaderExtraction(t *testing.T) {
	tests := []struct {
		name           string
		tenantID       string
		expectedStatus int
	}{
		{
			name:           "valid tenant ID in header",
			tenantID:       uuid.New().String(),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing tenant ID",
			tenantID:       "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid tenant ID format",
			tenantID:       "not-a-uuid",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Tenant())

			var capturedTenantID string
			router.GET("/test", func(c *gin.Context) {
				capturedTenantID = c.GetString(TenantIDKey)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.tenantID != "" {
				req.Header.Set(TenantHeaderKey, tt.tenantID)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.tenantID, capturedTenantID)
			}
		})
	}
}

func TestTenant_SkipPaths(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{
			name:           "health endpoint skipped",
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "ready endpoint skipped",
			path:           "/ready",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "nested health path skipped",
			path:           "/health/live",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "api path requires tenant",
			path:           "/api/v1/boards",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Tenant())

			router.GET(tt.path, func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestGetTenantUUID(t *testing.T) {
	tenantID := uuid.New()

	router := gin.New()
	router.Use(Tenant())

	router.GET("/test", func(c *gin.Context) {
		got, err := GetTenantUUID(c)
		require.NoError(t, err)
		assert.Equal(t, tenantID, got)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(TenantHeaderKey, tenantID.String())
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetActor(t *testing.T) {
	t.Run("returns acting user from header", func(t *testing.T) {
		router := gin.New()
		router.Use(Tenant())

		var actor string
		router.GET("/test", func(c *gin.Context) {
			actor = GetActor(c)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(TenantHeaderKey, uuid.New().String())
		req.Header.Set(ActorHeaderKey, "alice")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", actor)
	})

	t.Run("defaults to system without header", func(t *testing.T) {
		router := gin.New()
		router.Use(Tenant())

		var actor string
		router.GET("/test", func(c *gin.Context) {
			actor = GetActor(c)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(TenantHeaderKey, uuid.New().String())
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "system", actor)
	})
}

func TestRequestID(t *testing.T) {
	t.Run("honors caller supplied id", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())

		router.GET("/test", func(c *gin.Context) {
			assert.Equal(t, "req-123", GetRequestID(c))
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("generates id when absent", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())

		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		echoed := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(echoed)
		assert.NoError(t, err)
	})
}

func TestCORS(t *testing.T) {
	t.Run("allows configured origin", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"https://app.example.com"}

		router := gin.New()
		router.Use(CORSWithConfig(cfg))
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("rejects unknown origin", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"https://app.example.com"}

		router := gin.New()
		router.Use(CORSWithConfig(cfg))
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight aborts with no content", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"https://app.example.com"}

		router := gin.New()
		router.Use(CORSWithConfig(cfg))

		handlerHit := false
		router.POST("/test", func(c *gin.Context) { handlerHit = true })

		req := httptest.NewRequest(http.MethodOptions, "/test", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.False(t, handlerHit)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Tenant-ID")
	})

	t.Run("wildcard origin never sends credentials", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"*"}

		router := gin.New()
		router.Use(CORSWithConfig(cfg))
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}
