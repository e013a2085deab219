package contract

import (
	"context"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GuestSessionRepository interface {
	Create(ctx context.Context, session *entity.GuestSession) error
	Update(ctx context.Context, session *entity.GuestSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error) // Hard delete, used by the cleanup tool
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuestSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GuestSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
