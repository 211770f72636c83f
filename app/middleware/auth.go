package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vibast-solutions/ms-go-session/app/controller"
	httpdto "github.com/vibast-solutions/ms-go-session/app/dto/http"
	"github.com/vibast-solutions/ms-go-session/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type accessTokenValidator interface {
	ValidateAccessToken(tokenString string) (*service.TokenClaims, error)
}

type AuthMiddleware struct {
	authService accessTokenValidator
}

func NewAuthMiddleware(authService accessTokenValidator) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth accepts the access token either as a bearer header or as the
// httpOnly cookie the service itself sets.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := extractToken(c)
		if err != nil {
			logrus.Debug("Missing access token")
			return c.JSON(http.StatusUnauthorized, httpdto.NewError(http.StatusUnauthorized, err.Error()))
		}

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			logrus.Debug("Invalid or expired access token")
			return c.JSON(http.StatusUnauthorized, httpdto.NewError(http.StatusUnauthorized, "invalid or expired token"))
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_email", claims.Email)

		return next(c)
	}
}

func extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", errors.New("invalid authorization header format")
		}
		return parts[1], nil
	}

	cookie, err := c.Cookie(controller.AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return "", errors.New("missing access token")
	}
	return cookie.Value, nil
}
