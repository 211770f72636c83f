package controller

import (
	"net/http"
	"time"

	"github.com/vibast-solutions/ms-go-session/app/service"

	"github.com/labstack/echo/v4"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// CookieManager writes and clears the httpOnly token cookies. Secure is
// only set outside local environments so that plain-HTTP development
// still works.
type CookieManager struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
	secure     bool
}

func NewCookieManager(accessTTL, refreshTTL time.Duration, secure bool) *CookieManager {
	return &CookieManager{
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		secure:     secure,
	}
}

func (m *CookieManager) SetTokenPair(c echo.Context, pair *service.TokenPair) {
	c.SetCookie(m.cookie(AccessTokenCookie, pair.AccessToken, m.accessTTL))
	c.SetCookie(m.cookie(RefreshTokenCookie, pair.RefreshToken, m.refreshTTL))
}

func (m *CookieManager) Clear(c echo.Context) {
	c.SetCookie(m.expired(AccessTokenCookie))
	c.SetCookie(m.expired(RefreshTokenCookie))
}

func (m *CookieManager) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
	}
}

// expired uses the same flags as cookie, minus the lifetime.
func (m *CookieManager) expired(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
	}
}
