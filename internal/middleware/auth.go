// Package middleware provides HTTP middleware for the patient-management service.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nimmmsh/digiCare/internal/service"
)

// SessionCookie is the name of the session token cookie.
const SessionCookie = "session_token"

// sessionContextKey is where the authenticated session lives in the gin context.
const sessionContextKey = "session"

// SessionFrom returns the authenticated session stored by RequireSession.
func SessionFrom(c *gin.Context) (*service.Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*service.Session)
	return sess, ok
}

// extractToken reads the session token from the cookie, falling back to a
// bearer Authorization header for non-browser clients.
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// authenticate resolves the request's token to a live session and stores it
// in the context. It aborts with 401 on failure and never calls c.Next(), so
// callers decide when the rest of the chain runs.
func authenticate(c *gin.Context, auth service.AuthService) (*service.Session, bool) {
	token := extractToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":    "authentication required",
			"redirect": "/login",
		})
		return nil, false
	}

	sess, err := auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":    "authentication required",
			"redirect": "/login",
		})
		return nil, false
	}

	c.Set(sessionContextKey, sess)
	return sess, true
}

// RequireSession rejects requests without a live session. On success the
// session is stored in the context for handlers to read.
func RequireSession(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, auth); !ok {
			return
		}
		c.Next()
	}
}

// RequireRoles allows only sessions whose role is in the allowed set. It runs
// the session check itself, so the role check can never execute against an
// unauthenticated request.
func RequireRoles(auth service.AuthService, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := authenticate(c, auth)
		if !ok {
			return
		}

		for _, allowed := range allowedRoles {
			if sess.Role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "you do not have permission to access this page",
			"redirect": "/dashboard",
		})
	}
}
