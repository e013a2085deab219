package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Conversation struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId         *string        `gorm:"type:varchar(255);index"` // stable user identifier (email)
	GuestSessionId *uuid.UUID     `gorm:"type:uuid;index"`
	Title          string         `gorm:"type:text;not null"`
	Messages       datatypes.JSON `gorm:"not null"`
	Pinned         bool           `gorm:"not null;default:false"`
	Version        int64          `gorm:"not null;default:0"` // bumped by every message append (compare-and-swap guard)
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Conversation) TableName() string {
	return "conversations"
}
