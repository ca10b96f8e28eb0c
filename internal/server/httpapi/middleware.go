package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/tempero/internal/common"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// authMiddleware requires "Authorization: Bearer <token>" and stores the
// token's user id in the gin context.
func (s *HTTPServer) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(msgTokenMissing))
			return
		}

		userID, err := s.users.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			msg := msgTokenInvalid
			if errors.Is(err, common.ErrTokenExpired) {
				msg = msgTokenExpired
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(msg))
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(started),
		)
	}
}

// cors allows any origin; the backend is meant for local development.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
