package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nimmmsh/digiCare/internal/middleware"
)

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestCookieHelper_SetSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	helper := NewCookieHelper(CookieConfig{Secure: true, SameSite: http.SameSiteLaxMode})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	helper.SetSessionCookie(c, "token-value", time.Hour)

	cookie := sessionCookieFrom(t, w)
	if cookie.Value != "token-value" {
		t.Errorf("cookie.Value = %q, want %q", cookie.Value, "token-value")
	}
	if !cookie.HttpOnly {
		t.Error("cookie.HttpOnly = false, want true")
	}
	if !cookie.Secure {
		t.Error("cookie.Secure = false, want true")
	}
	if cookie.Path != "/" {
		t.Errorf("cookie.Path = %q, want %q (default)", cookie.Path, "/")
	}
	if cookie.MaxAge != 3600 {
		t.Errorf("cookie.MaxAge = %d, want 3600", cookie.MaxAge)
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie.SameSite = %v, want Lax", cookie.SameSite)
	}
}

func TestCookieHelper_ClearSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	helper := NewCookieHelper(CookieConfig{SameSite: http.SameSiteLaxMode})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	helper.ClearSessionCookie(c)

	cookie := sessionCookieFrom(t, w)
	if cookie.Value != "" {
		t.Errorf("cookie.Value = %q, want empty", cookie.Value)
	}
	if cookie.MaxAge >= 0 {
		t.Errorf("cookie.MaxAge = %d, want negative to expire", cookie.MaxAge)
	}
}

func TestCookieHelper_SessionToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	helper := NewCookieHelper(CookieConfig{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "stored-token"})

	if got := helper.SessionToken(c); got != "stored-token" {
		t.Errorf("SessionToken() = %q, want %q", got, "stored-token")
	}
}

func TestCookieHelper_SessionToken_NoCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	helper := NewCookieHelper(CookieConfig{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if got := helper.SessionToken(c); got != "" {
		t.Errorf("SessionToken() = %q, want empty", got)
	}
}
