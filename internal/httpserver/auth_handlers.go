package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopper/internal/events"
	"shopper/internal/logging"
	"shopper/internal/service"
)

type AuthHandler struct {
	Svc    *service.AuthService
	Events *events.Producer
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req service.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return httpError(c, err)
	}

	publish(c, h.Events, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("user registered")
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(c, err)
	}

	c.SetCookie(CreateCookie("accessToken", result.AccessToken, "/", result.AccessExp))
	c.SetCookie(CreateCookie("refreshToken", result.RefreshToken, "/", result.RefreshExp))

	l.Info("login succeeded")
	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"is_admin":      result.IsAdmin,
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	raw := refreshToken(c)
	if raw == "" {
		l.Warn("refresh_error", "status", 401, "reason", "refresh token missing")
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}

	result, err := h.Svc.Refresh(ctx, raw)
	if err != nil {
		return httpError(c, err)
	}

	c.SetCookie(CreateCookie("accessToken", result.AccessToken, "/", result.AccessExp))
	c.SetCookie(CreateCookie("refreshToken", result.RefreshToken, "/", result.RefreshExp))

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"is_admin":      result.IsAdmin,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if raw := refreshToken(c); raw != "" {
		if err := h.Svc.Logout(ctx, raw); err != nil {
			return httpError(c, err)
		}
	}

	c.SetCookie(DeleteCookie("accessToken", "/"))
	c.SetCookie(DeleteCookie("refreshToken", "/"))

	l.Info("logged out")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the acting user resolved by the auth middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	actor := actingUser(c)
	return c.JSON(http.StatusOK, echo.Map{
		"id":       actor.ID,
		"email":    actor.Email,
		"is_admin": actor.Admin,
	})
}

// refreshToken reads the raw refresh token from the body or the cookie set at
// login.
func refreshToken(c echo.Context) string {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	cookie, err := c.Cookie("refreshToken")
	if err != nil {
		return ""
	}
	return cookie.Value
}
