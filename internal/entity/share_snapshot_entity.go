package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShareSnapshot is an immutable copy of a conversation's messages taken at
// share-creation time. Only ViewCount moves after creation.
type ShareSnapshot struct {
	Id        uuid.UUID
	Token     string
	Title     string
	Messages  []Message
	CreatedBy *string
	IsPublic  bool
	ViewCount int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *ShareSnapshot) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
