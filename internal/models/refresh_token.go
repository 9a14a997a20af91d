package models

import "time"

// RefreshToken is a long-lived credential that can be exchanged once for a
// fresh access/refresh token pair. Tokens are never deleted: rotation and
// revocation only set the revoked columns, so the chain of ReplacedByToken
// values preserves an audit trail.
type RefreshToken struct {
	Base
	Token           string     `gorm:"uniqueIndex;size:64;not null" json:"token"`
	ExpiresAt       time.Time  `gorm:"not null" json:"expires_at"`
	CreatedByIP     string     `gorm:"size:45" json:"created_by_ip"`
	RevokedAt       *time.Time `json:"revoked_at,omitempty"`
	RevokedByIP     string     `gorm:"size:45" json:"revoked_by_ip,omitempty"`
	ReplacedByToken string     `gorm:"size:64" json:"replaced_by_token,omitempty"`
	UserID          uint       `gorm:"index;not null" json:"user_id"`
	User            *User      `gorm:"foreignKey:UserID" json:"-"`
}

// IsExpired reports whether the token's lifetime has elapsed.
func (t *RefreshToken) IsExpired() bool {
	return !time.Now().Before(t.ExpiresAt)
}

// IsActive reports whether the token can still be rotated: not revoked and
// not expired.
func (t *RefreshToken) IsActive() bool {
	return t.RevokedAt == nil && !t.IsExpired()
}
