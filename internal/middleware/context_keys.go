package middleware

import (
	"github.com/SscSPs/forexflex/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// sessionKey is the key used to store the resolved session in the Gin context.
const sessionKey = contextKey("session")

// GetSessionFromContext retrieves the browser session resolved by SessionMiddleware.
// It returns the session and a boolean indicating if it was found.
func GetSessionFromContext(c *gin.Context) (domain.Session, bool) {
	val, exists := c.Get(string(sessionKey))
	if !exists {
		if s, ok := c.Request.Context().Value(sessionKey).(domain.Session); ok {
			return s, true
		}
		return domain.Session{}, false
	}

	session, ok := val.(domain.Session)
	if !ok {
		return domain.Session{}, false
	}
	return session, true
}
