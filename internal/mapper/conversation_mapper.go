package mapper

import (
	"encoding/json"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

// MessagesToJSON marshals the embedded message array. []entity.Message always
// marshals cleanly, so the error is swallowed here.
func MessagesToJSON(messages []entity.Message) datatypes.JSON {
	if messages == nil {
		messages = []entity.Message{}
	}
	raw, _ := json.Marshal(messages)
	return datatypes.JSON(raw)
}

func MessagesFromJSON(raw datatypes.JSON) []entity.Message {
	messages := []entity.Message{}
	if len(raw) == 0 {
		return messages
	}
	_ = json.Unmarshal(raw, &messages)
	return messages
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Conversation{
		Id:             c.Id,
		UserId:         c.UserId,
		GuestSessionId: c.GuestSessionId,
		Title:          c.Title,
		Messages:       MessagesFromJSON(c.Messages),
		Pinned:         c.Pinned,
		Version:        c.Version,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      c.DeletedAt.Valid,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Conversation{
		Id:             c.Id,
		UserId:         c.UserId,
		GuestSessionId: c.GuestSessionId,
		Title:          c.Title,
		Messages:       MessagesToJSON(c.Messages),
		Pinned:         c.Pinned,
		Version:        c.Version,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}
