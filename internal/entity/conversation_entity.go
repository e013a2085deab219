package entity

import (
	"time"

	"github.com/google/uuid"
)

// Owner is the single resolved owner key for history operations.
// Exactly one of UserEmail or GuestSessionId is set.
type Owner struct {
	UserEmail      string
	GuestSessionId *uuid.UUID
}

func (o Owner) IsZero() bool {
	return o.UserEmail == "" && o.GuestSessionId == nil
}

type Conversation struct {
	Id             uuid.UUID
	UserId         *string
	GuestSessionId *uuid.UUID
	Title          string
	Messages       []Message
	Pinned         bool
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// OwnedBy checks the ownership invariant used by every mutation.
func (c *Conversation) OwnedBy(owner Owner) bool {
	if owner.UserEmail != "" {
		return c.UserId != nil && *c.UserId == owner.UserEmail
	}
	if owner.GuestSessionId != nil {
		return c.GuestSessionId != nil && *c.GuestSessionId == *owner.GuestSessionId
	}
	return false
}
