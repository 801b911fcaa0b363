package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/tokens"
)

// Refresh tokens are stored as sha256 digests; a leaked table never yields a
// usable token.

func (r *GormRepo) SaveRefreshToken(ctx context.Context, raw, userID string, expiresAt time.Time) error {
	rt := models.RefreshToken{
		Token:     tokens.Sha256Hex(raw),
		UserID:    userID,
		ExpiresAt: expiresAt.Unix(),
	}
	return r.DB.WithContext(ctx).Create(&rt).Error
}

func (r *GormRepo) RefreshTokenValid(ctx context.Context, raw string) (string, error) {
	var stored models.RefreshToken
	err := r.DB.WithContext(ctx).
		Where("token = ?", tokens.Sha256Hex(raw)).
		First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("refresh token not found")
		}
		return "", err
	}
	if stored.Revoked {
		return "", errors.New("refresh token revoked")
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return "", errors.New("refresh token expired")
	}
	return stored.UserID, nil
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, raw string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", tokens.Sha256Hex(raw)).
		Update("revoked", true).Error
}
