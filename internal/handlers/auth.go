// Package handlers contains HTTP request handlers for the patient-management service.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nimmmsh/digiCare/internal/metrics"
	"github.com/Nimmmsh/digiCare/internal/service"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	authService service.AuthService
	cookies     *CookieHelper
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, cookies *CookieHelper) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
	}
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	UserID    int64  `json:"user_id"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expires_in"`
}

// Login validates credentials, creates the session, and sets the session
// cookie. Unknown usernames and wrong passwords produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	h.cookies.SetSessionCookie(c, result.Token, time.Duration(result.ExpiresIn)*time.Second)

	c.JSON(http.StatusOK, LoginResponse{
		UserID:    result.Session.UserID,
		FullName:  result.Session.FullName,
		Role:      result.Session.Role,
		ExpiresIn: result.ExpiresIn,
	})
}

// Logout revokes the session and clears the cookie. Clearing is uncondi-
// tional so a stale cookie never survives a logout attempt.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := h.cookies.SessionToken(c)
	h.cookies.ClearSessionCookie(c)

	if token != "" {
		// The cookie is already gone; an invalid token is not worth a failure.
		_ = h.authService.Logout(c.Request.Context(), token)
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
