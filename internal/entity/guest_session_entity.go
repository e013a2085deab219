package entity

import (
	"time"

	"github.com/google/uuid"
)

type GuestSession struct {
	Id           uuid.UUID
	Token        string
	ChatTitle    *string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	LastActivity time.Time
}

// Expired compares at read time; there is no background reaper, an expired
// session is simply treated as nonexistent by the verifier.
func (s *GuestSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
