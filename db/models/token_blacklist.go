package models

import (
	"time"

	"gorm.io/gorm"
)

func init() {
	registerModel(&TokenBlacklist{})
}

// TokenBlacklist holds the JTIs of refresh tokens revoked before their
// natural expiry. ExpiresAt allows purging rows once the token would
// have expired anyway.
type TokenBlacklist struct {
	gorm.Model
	JTI       string `gorm:"uniqueIndex;not null"`
	UserID    uint
	User      User
	ExpiresAt time.Time
}
