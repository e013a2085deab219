package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByGuestToken filters guest sessions by bearer token.
type ByGuestToken struct {
	Token string
}

func (s ByGuestToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token = ?", s.Token)
}

// ExpiredBefore selects guest sessions whose expiry has passed.
type ExpiredBefore struct {
	Now time.Time
}

func (s ExpiredBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at <= ?", s.Now)
}
