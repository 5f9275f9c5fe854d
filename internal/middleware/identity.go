package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDCtxKey = contextKey("userID")

// UserIDHeader carries the acting user's identifier. Collaborator subsystems
// are trusted callers; authentication happens upstream of this service.
const UserIDHeader = "X-User-ID"

// RequireUserID creates a Gin middleware handler that requires the acting
// user's id on every request and stores it on the request context. Every
// journal mutation is attributed to this id.
func RequireUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			GetLoggerFromCtx(c.Request.Context()).Warn("Missing user id header")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": UserIDHeader + " header is required"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDCtxKey, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user's id from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDCtxKey)
	if userIDVal == nil {
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", false
	}

	return userID, true
}
