package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGuestSessionResponse struct {
	Id        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VerifyGuestSessionRequest struct {
	Token string `json:"token" validate:"required"`
}

type VerifyGuestSessionResponse struct {
	Valid     bool      `json:"valid"`
	Id        uuid.UUID `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MigrateGuestRequest struct {
	GuestToken string `json:"guest_token" validate:"required"`
}

type MigrateGuestResponse struct {
	Migrated int64 `json:"migrated"`
}
