package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopper/internal/apperr"
	"shopper/internal/hash"
	"shopper/internal/logging"
	"shopper/internal/models"
	"shopper/internal/repo"
	"shopper/internal/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type RegisterRequest struct {
	Email              string `json:"email"`
	Password           string `json:"password"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	MailingAddress     string `json:"mailing_address"`
	PhoneNumber        string `json:"phone_number"`
	BillingInformation string `json:"billing_information"`
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	IsAdmin      bool
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password required: %w", apperr.ErrInvalidArgument)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Email:              req.Email,
		PasswordHash:       pwHash,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		MailingAddress:     req.MailingAddress,
		PhoneNumber:        req.PhoneNumber,
		BillingInformation: req.BillingInformation,
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			l.Warn("register_error", "reason", "email already registered")
			return nil, fmt.Errorf("email already registered: %w", apperr.ErrConflict)
		}
		l.Error("register_error", "error", err)
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and issues an access/refresh token pair. The
// refresh token is persisted as a sha256 fingerprint only.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown email")
			return nil, fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthenticated)
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "password mismatch")
		return nil, fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthenticated)
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a valid refresh token: the old one is revoked and a new
// pair is issued in a single store transaction.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.RefreshClaimsFromToken(rawRefresh, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", apperr.ErrUnauthenticated)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh subject: %w", apperr.ErrUnauthenticated)
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user no longer exists: %w", apperr.ErrUnauthenticated)
		}
		return nil, err
	}

	newRefresh, refreshExp, err := tokens.SignRefreshToken(user.ID, s.RefreshSecret)
	if err != nil {
		l.Error("refresh_error", "error", err)
		return nil, err
	}
	newClaims, err := tokens.RefreshClaimsFromToken(newRefresh, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	fresh := models.RefreshToken{
		Token:     tokens.Sha256Hex(newRefresh),
		UserID:    user.ID,
		JTI:       newClaims.ID,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.RotateRefreshToken(ctx, claims.ID, fresh); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, repo.ErrRefreshInvalid) {
			l.Warn("refresh_rejected", "reason", err.Error())
			return nil, fmt.Errorf("refresh token unusable: %w", apperr.ErrUnauthenticated)
		}
		return nil, err
	}

	accessToken, accessExp, err := tokens.SignAccessToken(user.ID, user.IsAdmin, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		IsAdmin:      user.IsAdmin,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, rawRefresh string) error {
	return s.Repo.RevokeRefreshToken(ctx, tokens.Sha256Hex(rawRefresh))
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.issue_tokens")

	accessToken, accessExp, err := tokens.SignAccessToken(user.ID, user.IsAdmin, s.JWTSecret)
	if err != nil {
		l.Error("sign_access_error", "error", err)
		return nil, err
	}

	refreshToken, refreshExp, err := tokens.SignRefreshToken(user.ID, s.RefreshSecret)
	if err != nil {
		l.Error("sign_refresh_error", "error", err)
		return nil, err
	}
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	stored := models.RefreshToken{
		Token:     tokens.Sha256Hex(refreshToken),
		UserID:    user.ID,
		JTI:       claims.ID,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.SaveRefreshToken(ctx, &stored); err != nil {
		l.Error("save_refresh_error", "error", err)
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		IsAdmin:      user.IsAdmin,
	}, nil
}
