package contract

import (
	"context"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ShareSnapshotRepository interface {
	Create(ctx context.Context, snapshot *entity.ShareSnapshot) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ShareSnapshot, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
