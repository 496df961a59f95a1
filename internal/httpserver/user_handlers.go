package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopper/internal/events"
	"shopper/internal/logging"
	"shopper/internal/repo"
	"shopper/internal/service"
)

type UserHandler struct {
	Svc    *service.UserService
	Events *events.Producer
}

func (h *UserHandler) GetUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID := pathUserID(c)

	user, err := h.Svc.GetUser(ctx, userID)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_profile")

	userID := pathUserID(c)

	var req repo.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateProfile(ctx, userID, req)
	if err != nil {
		return httpError(c, err)
	}

	l.Info("profile updated", "user_id", userID)
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete_account")

	userID := pathUserID(c)

	if err := h.Svc.DeleteAccount(ctx, userID); err != nil {
		return httpError(c, err)
	}

	publish(c, h.Events, events.TopicUserEvents, userID.String(), map[string]any{
		"type":   "user_deleted",
		"userID": userID,
	})

	c.SetCookie(DeleteCookie("accessToken", "/"))
	c.SetCookie(DeleteCookie("refreshToken", "/"))

	l.Info("account deleted", "user_id", userID)
	return c.NoContent(http.StatusNoContent)
}
