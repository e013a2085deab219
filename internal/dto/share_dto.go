package dto

import (
	"time"

	"github.com/google/uuid"
)

// ShareMessageDTO is deliberately loose: malformed entries are repaired with
// safe defaults by the service instead of failing the whole share.
type ShareMessageDTO struct {
	Text      string     `json:"text"`
	Sender    string     `json:"sender"`
	Timestamp *time.Time `json:"timestamp"`
}

type CreateShareRequest struct {
	Messages    []ShareMessageDTO `json:"messages" validate:"required,min=1"`
	Title       string            `json:"title" validate:"max=200"`
	ExpiresDays int               `json:"expires_days" validate:"omitempty,min=1"`
	IsPublic    *bool             `json:"is_public"`
}

type CreateShareResponse struct {
	Id        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ShareSnapshotResponse struct {
	Id        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	Messages  []MessageDTO `json:"messages"`
	IsPublic  bool         `json:"is_public"`
	ViewCount int64        `json:"view_count"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}
