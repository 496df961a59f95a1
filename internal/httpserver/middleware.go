package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"shopper/internal/authz"
)

const (
	actingUserKey = "acting_user"
	pathUserIDKey = "path_user_id"
)

type AuthMiddleware struct {
	Gate *authz.Gate
}

// RequireAuth verifies the request token through the gate and stores the
// resolved ActingUser in the echo context for handlers to pick up.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := m.Gate.Authenticate(c.Request().Context(), requestToken(c))
		if err != nil {
			return httpError(c, err)
		}
		c.Set(actingUserKey, actor)
		return next(c)
	}
}

func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := m.Gate.RequireAdmin(c.Request().Context(), requestToken(c))
		if err != nil {
			return httpError(c, err)
		}
		c.Set(actingUserKey, actor)
		return next(c)
	}
}

// RequireOwner guards the /users/:id subtree. The gate makes the allow/deny
// decision for the request token against the user id in the path; admin
// actors pass for any id.
func (m *AuthMiddleware) RequireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
		}
		actor, err := m.Gate.Authorize(c.Request().Context(), requestToken(c), uid)
		if err != nil {
			return httpError(c, err)
		}
		c.Set(actingUserKey, actor)
		c.Set(pathUserIDKey, uid)
		return next(c)
	}
}

func actingUser(c echo.Context) authz.ActingUser {
	actor, _ := c.Get(actingUserKey).(authz.ActingUser)
	return actor
}

// pathUserID returns the :id parsed and authorized by RequireOwner.
func pathUserID(c echo.Context) uuid.UUID {
	uid, _ := c.Get(pathUserIDKey).(uuid.UUID)
	return uid
}

// requestToken reads the access token from the Authorization header, falling
// back to the accessToken cookie set at login.
func requestToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		if strings.HasPrefix(header, "Bearer ") || strings.HasPrefix(header, "bearer ") {
			return strings.TrimSpace(header[len("Bearer "):])
		}
		return header
	}
	cookie, err := c.Cookie("accessToken")
	if err != nil {
		return ""
	}
	return cookie.Value
}
