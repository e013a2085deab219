package contract

import (
	"context"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error // Soft delete

	// AppendMessages replaces the message array only when the stored version
	// still matches expectedVersion. Returns false (no error) on a version
	// conflict so callers can re-read and retry.
	AppendMessages(ctx context.Context, id uuid.UUID, messages []entity.Message, expectedVersion int64) (bool, error)

	// ReassignOwner moves every conversation of a guest session to a user
	// identity in one pass. Soft-deleted rows move too so nothing is orphaned.
	ReassignOwner(ctx context.Context, guestSessionId uuid.UUID, userEmail string) (int64, error)

	HardDeleteByGuestSessionIds(ctx context.Context, ids []uuid.UUID) (int64, error)

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
