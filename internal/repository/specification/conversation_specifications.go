package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedByUser filters conversations attached to an authenticated user email.
type OwnedByUser struct {
	Email string
}

func (s OwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.Email)
}

// OwnedByGuestSession filters conversations attached to a guest session.
type OwnedByGuestSession struct {
	GuestSessionID uuid.UUID
}

func (s OwnedByGuestSession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("guest_session_id = ?", s.GuestSessionID)
}

// PinnedFirst orders pinned conversations before unpinned regardless of
// timestamps, then most recently updated first.
type PinnedFirst struct{}

func (s PinnedFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("pinned DESC").Order("updated_at DESC")
}
