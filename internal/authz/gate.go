package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopper/internal/apperr"
	"shopper/internal/repo"
	"shopper/internal/tokens"
)

// ActingUser is the identity resolved from a verified token. It is returned
// as an explicit value and threaded into downstream calls, never attached to
// ambient request state.
type ActingUser struct {
	ID    uuid.UUID
	Email string
	Admin bool
}

// Gate decides allow/deny for a request's token against the resource owner
// implied by the path. Verification is read-only.
type Gate struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

// Authenticate verifies the token and resolves the acting user. The admin
// flag comes from the user row, not the claims, so a stale token cannot keep
// revoked privileges.
func (g *Gate) Authenticate(ctx context.Context, rawToken string) (ActingUser, error) {
	if rawToken == "" {
		return ActingUser{}, fmt.Errorf("missing token: %w", apperr.ErrUnauthenticated)
	}

	claims, err := tokens.AccessClaimsFromToken(rawToken, g.JWTSecret)
	if err != nil {
		return ActingUser{}, fmt.Errorf("invalid token: %w", apperr.ErrUnauthenticated)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ActingUser{}, fmt.Errorf("invalid token subject: %w", apperr.ErrUnauthenticated)
	}

	user, err := g.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ActingUser{}, fmt.Errorf("token subject no longer exists: %w", apperr.ErrUnauthenticated)
		}
		return ActingUser{}, err
	}

	return ActingUser{ID: user.ID, Email: user.Email, Admin: user.IsAdmin}, nil
}

// Authorize authenticates and then enforces ownership: the acting user must
// be the requested user, unless it holds the admin capability.
func (g *Gate) Authorize(ctx context.Context, rawToken string, requestedUserID uuid.UUID) (ActingUser, error) {
	actor, err := g.Authenticate(ctx, rawToken)
	if err != nil {
		return ActingUser{}, err
	}
	if requestedUserID != actor.ID && !actor.Admin {
		return ActingUser{}, fmt.Errorf("not the resource owner: %w", apperr.ErrForbidden)
	}
	return actor, nil
}

// RequireAdmin authenticates and rejects non-admin actors.
func (g *Gate) RequireAdmin(ctx context.Context, rawToken string) (ActingUser, error) {
	actor, err := g.Authenticate(ctx, rawToken)
	if err != nil {
		return ActingUser{}, err
	}
	if !actor.Admin {
		return ActingUser{}, fmt.Errorf("admin capability required: %w", apperr.ErrForbidden)
	}
	return actor, nil
}
