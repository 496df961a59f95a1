package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/register", "", map[string]any{
		"email":      "jack@x.com",
		"password":   "mooo",
		"first_name": "Jack",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		IsAdmin   bool   `json:"is_admin"`
	}
	decode(t, rec, &user)
	require.Equal(t, "jack@x.com", user.Email)
	require.Equal(t, "Jack", user.FirstName)
	require.False(t, user.IsAdmin)
	require.NotContains(t, rec.Body.String(), "mooo")

	access, refresh := env.login(t, "jack@x.com", "mooo")
	require.NotEqual(t, access, refresh)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "dup@x.com", "pw")

	rec := env.do(t, http.MethodPost, "/api/v1/register", "", map[string]any{
		"email":    "dup@x.com",
		"password": "other",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterMissingPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/register", "", map[string]any{
		"email": "half@x.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jack@x.com", "mooo")

	rec := env.do(t, http.MethodPost, "/api/v1/login", "", map[string]any{
		"email":    "jack@x.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/login", "", map[string]any{
		"email":    "ghost@x.com",
		"password": "mooo",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "jack@x.com", "mooo")
	access, _ := env.login(t, "jack@x.com", "mooo")

	rec := env.do(t, http.MethodGet, "/api/v1/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/me", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		IsAdmin bool   `json:"is_admin"`
	}
	decode(t, rec, &me)
	require.Equal(t, userID, me.ID)
	require.Equal(t, "jack@x.com", me.Email)
	require.False(t, me.IsAdmin)
}

func TestRefreshRotatesTokens(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jack@x.com", "mooo")
	_, refresh := env.login(t, "jack@x.com", "mooo")

	rec := env.do(t, http.MethodPost, "/api/v1/refresh", "", map[string]any{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var rotated struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decode(t, rec, &rotated)
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEqual(t, refresh, rotated.RefreshToken)

	// replaying the rotated-out token must fail
	rec = env.do(t, http.MethodPost, "/api/v1/refresh", "", map[string]any{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// the fresh one still works
	rec = env.do(t, http.MethodPost, "/api/v1/refresh", "", map[string]any{
		"refresh_token": rotated.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/refresh", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutInvalidatesRefresh(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jack@x.com", "mooo")
	_, refresh := env.login(t, "jack@x.com", "mooo")

	rec := env.do(t, http.MethodPost, "/api/v1/logout", "", map[string]any{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/refresh", "", map[string]any{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jack@x.com", "mooo")
	access, _ := env.login(t, "jack@x.com", "mooo")

	rec := env.do(t, http.MethodPost, "/api/v1/refresh", "", map[string]any{
		"refresh_token": access,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
