package dto

import "github.com/google/uuid"

// ChatActivityMessage is the pub/sub payload that keeps the denormalized
// chat_title preview on guest sessions in sync.
type ChatActivityMessage struct {
	GuestSessionId uuid.UUID `json:"guest_session_id"`
	Title          string    `json:"title"`
}
