package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopper/internal/authz"
	"shopper/internal/models"
	"shopper/internal/repo"
	"shopper/internal/service"
)

var (
	testJWTSecret     = []byte("http-test-access-secret")
	testRefreshSecret = []byte("http-test-refresh-secret")
)

type testEnv struct {
	e    *echo.Echo
	repo *repo.GormRepo
}

// newTestEnv wires the full stack against an in-memory store, with event
// publishing disabled.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.RefreshToken{},
	))

	r := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{Repo: r, JWTSecret: testJWTSecret, RefreshSecret: testRefreshSecret}

	e := echo.New()
	e.HideBanner = true
	Register(e, &Deps{
		Gate:           &authz.Gate{Repo: r, JWTSecret: testJWTSecret},
		AuthHandler:    &AuthHandler{Svc: authSvc},
		CartHandler:    &CartHandler{Svc: &service.CartService{Repo: r}},
		ProductHandler: &ProductHandler{Svc: &service.CatalogService{Repo: r}},
		UserHandler:    &UserHandler{Svc: &service.UserService{Repo: r}},
	})

	return &testEnv{e: e, repo: r}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// register signs up a user and returns its id.
func (env *testEnv) register(t *testing.T, email, password string) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/v1/register", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user struct {
		ID string `json:"id"`
	}
	decode(t, rec, &user)
	require.NotEmpty(t, user.ID)
	return user.ID
}

// login returns the access and refresh tokens for a registered user.
func (env *testEnv) login(t *testing.T, email, password string) (string, string) {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/v1/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	return resp.AccessToken, resp.RefreshToken
}

// promote flips the user's admin flag directly in the store. Tokens minted
// afterwards carry the capability.
func (env *testEnv) promote(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, env.repo.DB.Model(&models.User{}).
		Where("email = ?", email).
		Update("is_admin", true).Error)
}

// seedProduct inserts a product straight into the store, bypassing the admin
// routes, for tests that are not about catalog management.
func (env *testEnv) seedProduct(t *testing.T, name string, price float64) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Description: name, Price: price, Inventory: 10}
	require.NoError(t, env.repo.DB.Create(p).Error)
	return p
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health/live", "", nil).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health/ready", "", nil).Code)
}
