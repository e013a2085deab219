package dto

import (
	"time"

	"github.com/google/uuid"
)

type MessageDTO struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type ConversationSummaryResponse struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Pinned       bool       `json:"pinned"`
	MessageCount int        `json:"message_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type ConversationResponse struct {
	Id        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	Pinned    bool         `json:"pinned"`
	Messages  []MessageDTO `json:"messages"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at"`
}

// UpdateConversationRequest carries the PATCH surface: each field is optional
// and applied independently.
type UpdateConversationRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=200"`
	Pinned    *bool   `json:"pinned"`
	IsDeleted *bool   `json:"is_deleted"`
}
