package controller

import (
	"errors"
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-session/app/dto/http"
	"github.com/vibast-solutions/ms-go-session/app/service"
	"github.com/vibast-solutions/ms-go-session/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	MsgSignupSuccess        = "User created successfully"
	MsgSigninSuccess        = "Logged in successfully"
	MsgLogoutSuccess        = "Logged out successfully"
	MsgRefreshSuccess       = "Token refreshed successfully"
	MsgProfileSuccess       = "Profile retrieved successfully"
	MsgEmailExists          = "Email is already in use"
	MsgInvalidCredentials   = "Invalid credentials"
	MsgInvalidRefreshToken  = "Invalid refresh token"
	MsgRefreshTokenNotFound = "Refresh token not found"
	MsgInternalError        = "Internal server error"
)

type AuthController struct {
	authService *service.AuthService
	cookies     *CookieManager
	policy      config.PasswordPolicy
}

func NewAuthController(authService *service.AuthService, cookies *CookieManager, policy config.PasswordPolicy) *AuthController {
	return &AuthController{
		authService: authService,
		cookies:     cookies,
		policy:      policy,
	}
}

func (c *AuthController) Signup(ctx echo.Context) error {
	var req httpdto.SignupRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind signup request")
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(http.StatusBadRequest, "invalid request body"))
	}

	if err := req.Validate(c.policy); err != nil {
		logrus.WithField("email", req.Email).Debug("Signup validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(http.StatusBadRequest, err.Error()))
	}

	logrus.WithField("email", req.Email).Info("Signup request received")
	pair, user, err := c.authService.Signup(ctx.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			logrus.WithField("email", req.Email).Warn("Signup failed: email already in use")
			return ctx.JSON(http.StatusConflict, httpdto.NewError(http.StatusConflict, MsgEmailExists))
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Signup failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError(http.StatusInternalServerError, MsgInternalError))
	}

	c.cookies.SetTokenPair(ctx, pair)

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return ctx.JSON(http.StatusCreated, httpdto.NewCreated(MsgSignupSuccess, user))
}

func (c *AuthController) Signin(ctx echo.Context) error {
	var req httpdto.SigninRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind signin request")
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(http.StatusBadRequest, "invalid request body"))
	}

	if err := req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Signin validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(http.StatusBadRequest, err.Error()))
	}

	logrus.WithField("email", req.Email).Info("Signin request received")
	pair, err := c.authService.Signin(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logrus.WithField("email", req.Email).Warn("Signin failed: invalid credentials")
			return ctx.JSON(http.StatusUnauthorized, httpdto.NewError(http.StatusUnauthorized, MsgInvalidCredentials))
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Signin failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError(http.StatusInternalServerError, MsgInternalError))
	}

	c.cookies.SetTokenPair(ctx, pair)

	logrus.WithField("email", req.Email).Info("Signin successful")
	return ctx.JSON(http.StatusOK, httpdto.NewSuccess(MsgSigninSuccess, nil))
}

// RefreshToken reads the refresh token from its cookie; there is no body.
// A missing cookie and every validation failure produce the same 401 with
// no cookies set.
func (c *AuthController) RefreshToken(ctx echo.Context) error {
	cookie, err := ctx.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		logrus.Debug("Refresh token cookie missing")
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError(http.StatusUnauthorized, MsgRefreshTokenNotFound))
	}

	logrus.Info("Refresh token request received")
	pair, err := c.authService.RefreshFromToken(ctx.Request().Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			logrus.Warn("Refresh failed: invalid, expired, or rotated token")
			return ctx.JSON(http.StatusUnauthorized, httpdto.NewError(http.StatusUnauthorized, MsgInvalidRefreshToken))
		}
		logrus.WithError(err).Error("Refresh failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError(http.StatusInternalServerError, MsgInternalError))
	}

	c.cookies.SetTokenPair(ctx, pair)

	logrus.Info("Refresh token successful")
	return ctx.JSON(http.StatusOK, httpdto.NewSuccess(MsgRefreshSuccess, nil))
}

func (c *AuthController) Logout(ctx echo.Context) error {
	userID, ok := ctx.Get("user_id").(string)
	if !ok || userID == "" {
		logrus.Warn("Logout failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError(http.StatusUnauthorized, "unauthorized"))
	}

	logrus.WithField("user_id", userID).Info("Logout request received")
	if err := c.authService.Logout(ctx.Request().Context(), userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Logout failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError(http.StatusInternalServerError, MsgInternalError))
	}

	c.cookies.Clear(ctx)

	logrus.WithField("user_id", userID).Info("Logout successful")
	return ctx.JSON(http.StatusOK, httpdto.NewSuccess(MsgLogoutSuccess, nil))
}

// Profile answers from the validated claims; no store read is needed.
func (c *AuthController) Profile(ctx echo.Context) error {
	userID, ok := ctx.Get("user_id").(string)
	email, okEmail := ctx.Get("user_email").(string)
	if !ok || !okEmail || userID == "" {
		logrus.Warn("Profile failed: missing claims in context")
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError(http.StatusUnauthorized, "unauthorized"))
	}

	return ctx.JSON(http.StatusOK, httpdto.NewSuccess(MsgProfileSuccess, map[string]string{
		"id":    userID,
		"email": email,
	}))
}
