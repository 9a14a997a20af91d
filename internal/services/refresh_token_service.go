package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "finwatch/internal/errors"
	"finwatch/internal/models"
)

// refreshTokenService manages the refresh-token lifecycle. A token is Active
// until it is rotated (revoked with a replacement), revoked explicitly, or
// expires; expiry is checked lazily via IsActive.
type refreshTokenService struct {
	db          *gorm.DB
	refreshDays int
	tokenFn     TokenGenerator
}

// NewRefreshTokenService creates a new RefreshTokenServicer. tokenFn mints
// the access token that accompanies every issued refresh token.
func NewRefreshTokenService(db *gorm.DB, refreshDays int, tokenFn TokenGenerator) RefreshTokenServicer {
	return &refreshTokenService{db: db, refreshDays: refreshDays, tokenFn: tokenFn}
}

// Issue creates a new active refresh token for the user and mints an access token.
func (s *refreshTokenService) Issue(user *models.User, ip string) (string, *models.RefreshToken, error) {
	refresh := s.newRefreshToken(user.ID, ip)
	if err := s.db.Create(refresh).Error; err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	access, err := s.tokenFn(user)
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return access, refresh, nil
}

// Rotate exchanges an active refresh token for a new pair. The consumed token
// is revoked and linked to its replacement; a token that is absent, revoked,
// or expired fails with INVALID_REFRESH_TOKEN and mutates nothing.
func (s *refreshTokenService) Rotate(token, ip string) (string, *models.RefreshToken, error) {
	current, err := s.getByToken(token)
	if err != nil {
		return "", nil, err
	}
	if !current.IsActive() {
		return "", nil, apperrors.ErrInvalidRefreshToken
	}

	replacement := s.newRefreshToken(current.UserID, ip)
	now := time.Now()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Guard against a concurrent rotation of the same token: only the
		// caller that flips revoked_at wins.
		res := tx.Model(&models.RefreshToken{}).
			Where("id = ? AND revoked_at IS NULL", current.ID).
			Updates(map[string]interface{}{
				"revoked_at":        now,
				"revoked_by_ip":     ip,
				"replaced_by_token": replacement.Token,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrInvalidRefreshToken
		}
		return tx.Create(replacement).Error
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return "", nil, appErr
		}
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	access, err := s.tokenFn(current.User)
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return access, replacement, nil
}

// Revoke marks a refresh token revoked without a replacement. Revoking an
// absent or already-inactive token is a silent no-op.
func (s *refreshTokenService) Revoke(token, ip string) error {
	current, err := s.getByToken(token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRefreshToken) {
			return nil
		}
		return err
	}
	if !current.IsActive() {
		return nil
	}

	now := time.Now()
	err = s.db.Model(current).Updates(map[string]interface{}{
		"revoked_at":    now,
		"revoked_by_ip": ip,
	}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// getByToken loads a refresh token with its owning user.
func (s *refreshTokenService) getByToken(token string) (*models.RefreshToken, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	var refresh models.RefreshToken
	err := s.db.Preload("User").Where("token = ?", token).First(&refresh).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &refresh, nil
}

// newRefreshToken builds an active token row with a fresh opaque value.
func (s *refreshTokenService) newRefreshToken(userID uint, ip string) *models.RefreshToken {
	return &models.RefreshToken{
		Token:       strings.ReplaceAll(uuid.NewString(), "-", ""),
		ExpiresAt:   time.Now().AddDate(0, 0, s.refreshDays),
		CreatedByIP: ip,
		UserID:      userID,
	}
}
