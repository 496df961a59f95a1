package repo

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopper/internal/models"
)

func openTestDB(t *testing.T) *GormRepo {
	t.Helper()
	return openDB(t, ":memory:")
}

// openFileTestDB backs the store with a temp file so concurrent connections
// share one database (in-memory sqlite gives every pool connection its own).
func openFileTestDB(t *testing.T) *GormRepo {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "shopper.db") + "?_pragma=busy_timeout(5000)"
	return openDB(t, dsn)
}

func openDB(t *testing.T, dsn string) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.RefreshToken{},
	))
	return &GormRepo{DB: db}
}

func createTestUser(t *testing.T, r *GormRepo, email string) *models.User {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, r.DB.Create(&user).Error)
	return &user
}

func createTestProduct(t *testing.T, r *GormRepo, name string) *models.Product {
	t.Helper()

	prod := models.Product{Name: name, Description: "test", Price: 1.5, Inventory: 10}
	require.NoError(t, r.DB.Create(&prod).Error)
	return &prod
}
