package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"shopper/internal/apperr"
	"shopper/internal/models"
)

func TestCreateUserIfNotExists(t *testing.T) {
	r := openTestDB(t)
	ctx := context.Background()

	u := models.User{Email: "dup@x.com", PasswordHash: "x"}
	require.NoError(t, r.CreateUserIfNotExists(ctx, &u))

	again := models.User{Email: "dup@x.com", PasswordHash: "y"}
	require.ErrorIs(t, r.CreateUserIfNotExists(ctx, &again), apperr.ErrConflict)

	var count int64
	require.NoError(t, r.DB.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

// The read in CreateUserIfNotExists can miss a row that lands before the
// insert commits; the resulting duplicated-key error must still come back as
// ErrConflict, not a raw driver error. A preset colliding primary key forces
// the insert down that exact path.
func TestCreateUserInsertCollisionIsConflict(t *testing.T) {
	r := openTestDB(t)
	ctx := context.Background()

	u := models.User{Email: "first@x.com", PasswordHash: "x"}
	require.NoError(t, r.CreateUserIfNotExists(ctx, &u))

	colliding := models.User{ID: u.ID, Email: "second@x.com", PasswordHash: "y"}
	require.ErrorIs(t, r.CreateUserIfNotExists(ctx, &colliding), apperr.ErrConflict)
}
