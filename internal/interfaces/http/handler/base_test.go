package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/boardhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBaseHandler_HandleError_DomainCodes(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found maps to 404",
			err:            shared.NewDomainError("NOT_FOUND", "Node not found in scope"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
		{
			name:           "duplicate code maps to 409",
			err:            shared.NewDomainError("ALREADY_EXISTS", "Code is taken"),
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeAlreadyExists,
		},
		{
			name:           "cycle rejection maps to 422",
			err:            shared.NewDomainError("INVALID_OPERATION", "Cannot move a node under its own descendant"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeInvalidOperation,
		},
		{
			name:           "depth ceiling maps to 422",
			err:            shared.NewDomainError("MAX_DEPTH_EXCEEDED", "Maximum depth exceeded"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeMaxDepthExceeded,
		},
		{
			name:           "delete guard maps to 409",
			err:            shared.NewDomainError("HAS_CHILDREN", "Node still has children"),
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeHasChildren,
		},
		{
			name:           "dependents guard maps to 409",
			err:            shared.NewDomainError("HAS_DEPENDENTS", "Node is referenced by posts"),
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeHasDependents,
		},
		{
			name:           "validation maps to 400",
			err:            shared.NewDomainError("INVALID_CODE", "Code cannot be empty"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidInput,
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestBaseHandler_HandleError_StorageFailureIsOpaque(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	h.HandleError(c, shared.NewStorageError(errors.New("pq: deadlock detected")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	// The driver message never leaks to the client
	assert.NotContains(t, resp.Error.Message, "deadlock")
}

func TestBaseHandler_SuccessEnvelope(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.SuccessWithMeta(c, []string{"a"}, 42, 10, 5)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.Skip)
	assert.Equal(t, 5, resp.Meta.Limit)
}
