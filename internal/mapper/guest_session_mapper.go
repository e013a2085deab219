package mapper

import (
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
)

type GuestSessionMapper struct{}

func NewGuestSessionMapper() *GuestSessionMapper {
	return &GuestSessionMapper{}
}

func (m *GuestSessionMapper) ToEntity(s *model.GuestSession) *entity.GuestSession {
	if s == nil {
		return nil
	}

	return &entity.GuestSession{
		Id:           s.Id,
		Token:        s.Token,
		ChatTitle:    s.ChatTitle,
		CreatedAt:    s.CreatedAt,
		ExpiresAt:    s.ExpiresAt,
		LastActivity: s.LastActivity,
	}
}

func (m *GuestSessionMapper) ToModel(s *entity.GuestSession) *model.GuestSession {
	if s == nil {
		return nil
	}

	return &model.GuestSession{
		Id:           s.Id,
		Token:        s.Token,
		ChatTitle:    s.ChatTitle,
		CreatedAt:    s.CreatedAt,
		ExpiresAt:    s.ExpiresAt,
		LastActivity: s.LastActivity,
	}
}
