// Package middleware holds the gin middleware chain: request ids, tenant
// resolution, and the actor audit header.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key for the request id
	RequestIDKey = "request_id"
	// RequestIDHeader is the inbound/outbound request id header
	RequestIDHeader = "X-Request-ID"
)

// RequestID assigns every request an id, honoring one supplied by the
// caller, and echoes it on the response
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID retrieves the request id from gin context
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
