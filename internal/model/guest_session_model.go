package model

import (
	"time"

	"github.com/google/uuid"
)

type GuestSession struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token        string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	ChatTitle    *string   `gorm:"type:text"` // denormalized preview of the latest conversation
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
	LastActivity time.Time `gorm:"not null"`
}

func (GuestSession) TableName() string {
	return "guest_sessions"
}
