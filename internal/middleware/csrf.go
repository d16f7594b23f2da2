package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// CSRFConfig holds configuration for CSRF protection middleware.
type CSRFConfig struct {
	// AllowedOrigins should match the CORS allowed origins.
	AllowedOrigins []string
}

// CSRF validates the Origin (or Referer) header on state-changing requests.
// Required with cookie sessions: browsers attach the session cookie to every
// request for the domain, including cross-site ones.
func CSRF(config CSRFConfig) gin.HandlerFunc {
	allowed := make(map[string]bool, len(config.AllowedOrigins))
	for _, origin := range config.AllowedOrigins {
		allowed[normalizeOrigin(origin)] = true
	}

	return func(c *gin.Context) {
		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}

		if origin := c.GetHeader("Origin"); origin != "" {
			if !allowed[normalizeOrigin(origin)] {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "request origin not allowed"})
				return
			}
			c.Next()
			return
		}

		if referer := c.GetHeader("Referer"); referer != "" {
			if !allowed[normalizeOrigin(refererOrigin(referer))] {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "request origin not allowed"})
				return
			}
			c.Next()
			return
		}

		// No browser context at all on a state-changing request.
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "request origin not allowed"})
	}
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(origin), "/")
}

// refererOrigin reduces a full referer URL to scheme://host.
func refererOrigin(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
