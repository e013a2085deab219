package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ShareSnapshot struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Token     string         `gorm:"type:varchar(64);not null"`
	Title     string         `gorm:"type:text;not null"`
	Messages  datatypes.JSON `gorm:"not null"`
	CreatedBy *string        `gorm:"type:varchar(255)"`
	IsPublic  bool           `gorm:"not null;default:true"`
	ViewCount int64          `gorm:"not null;default:0"`
	ExpiresAt time.Time      `gorm:"not null;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (ShareSnapshot) TableName() string {
	return "share_snapshots"
}
