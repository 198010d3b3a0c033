package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupValidator_NodeCodeTag(t *testing.T) {
	SetupValidator()

	type createRequest struct {
		Code string `json:"code" binding:"required,nodecode"`
	}

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid code",
			body:           `{"code":"general_01"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "space rejected",
			body:           `{"code":"has space"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "slash rejected",
			body:           `{"code":"a/b"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "over fifty characters rejected",
			body:           `{"code":"` + strings.Repeat("a", 51) + `"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty rejected",
			body:           `{"code":""}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/test", func(c *gin.Context) {
				var req createRequest
				if err := c.ShouldBindJSON(&req); err != nil {
					c.Status(http.StatusBadRequest)
					return
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
