package unitofwork

import (
	"context"

	"ai-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GuestSessionRepository() contract.GuestSessionRepository
	ConversationRepository() contract.ConversationRepository
	ShareSnapshotRepository() contract.ShareSnapshotRepository
}
