package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shopper/internal/models"
)

var ErrRefreshInvalid = errors.New("refresh token expired or revoked")

func (r *GormRepo) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(token).Error
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, fingerprint string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", fingerprint).
		Update("revoked", true).Error
}

func refreshUsable(db *gorm.DB, jti string) error {
	var stored models.RefreshToken
	if err := db.Where("jti = ?", jti).First(&stored).Error; err != nil {
		return err
	}
	if stored.Revoked || stored.ExpiresAt < time.Now().Unix() {
		return ErrRefreshInvalid
	}
	return nil
}

// RotateRefreshToken revokes the old token and stores the fresh one in a
// single transaction, so a replayed old token cannot mint a second pair.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldJTI string, fresh models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := refreshUsable(tx, oldJTI); err != nil {
			return err
		}

		if err := tx.Model(&models.RefreshToken{}).
			Where("jti = ?", oldJTI).
			Update("revoked", true).Error; err != nil {
			return err
		}

		return tx.Create(&fresh).Error
	})
}
