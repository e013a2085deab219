package mapper

import (
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
)

type ShareSnapshotMapper struct{}

func NewShareSnapshotMapper() *ShareSnapshotMapper {
	return &ShareSnapshotMapper{}
}

func (m *ShareSnapshotMapper) ToEntity(s *model.ShareSnapshot) *entity.ShareSnapshot {
	if s == nil {
		return nil
	}

	return &entity.ShareSnapshot{
		Id:        s.Id,
		Token:     s.Token,
		Title:     s.Title,
		Messages:  MessagesFromJSON(s.Messages),
		CreatedBy: s.CreatedBy,
		IsPublic:  s.IsPublic,
		ViewCount: s.ViewCount,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ShareSnapshotMapper) ToModel(s *entity.ShareSnapshot) *model.ShareSnapshot {
	if s == nil {
		return nil
	}

	return &model.ShareSnapshot{
		Id:        s.Id,
		Token:     s.Token,
		Title:     s.Title,
		Messages:  MessagesToJSON(s.Messages),
		CreatedBy: s.CreatedBy,
		IsPublic:  s.IsPublic,
		ViewCount: s.ViewCount,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
}
