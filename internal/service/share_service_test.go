package service

import (
	"context"
	"testing"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShareService(t *testing.T) (IShareService, unitofwork.RepositoryFactory) {
	factory := newTestFactory(t)
	return NewShareService(factory, nil, 30, 365, nopLogger{}), factory
}

func shareMessages() []dto.ShareMessageDTO {
	now := time.Now()
	return []dto.ShareMessageDTO{
		{Text: "What is Go?", Sender: "user", Timestamp: &now},
		{Text: "A programming language.", Sender: "ai", Timestamp: &now},
	}
}

func TestShareCreateAndRead(t *testing.T) {
	ctx := context.Background()
	svc, _ := newShareService(t)

	created, err := svc.Create(ctx, nil, &dto.CreateShareRequest{
		Messages:    shareMessages(),
		Title:       "Go basics",
		ExpiresDays: 30,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Token)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), created.ExpiresAt, time.Minute)

	first, err := svc.Read(ctx, created.Id, created.Token)
	require.NoError(t, err)
	assert.Equal(t, "Go basics", first.Title)
	assert.Len(t, first.Messages, 2)
	assert.Equal(t, int64(1), first.ViewCount)

	second, err := svc.Read(ctx, created.Id, created.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ViewCount)
}

func TestShareReadWrongToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newShareService(t)

	created, err := svc.Create(ctx, nil, &dto.CreateShareRequest{Messages: shareMessages()})
	require.NoError(t, err)

	_, err = svc.Read(ctx, created.Id, "wrong-token")
	assertAppError(t, err, fiber.StatusNotFound)
}

func TestShareReadExpired(t *testing.T) {
	ctx := context.Background()
	svc, factory := newShareService(t)

	// Seed an already-expired snapshot; reads fail closed, no reaper involved.
	now := time.Now()
	snapshot := entity.ShareSnapshot{
		Id:        uuid.New(),
		Token:     "expired-share-token",
		Title:     "Old share",
		Messages:  []entity.Message{{Text: "hello", Sender: entity.SenderUser, Timestamp: now.Add(-48 * time.Hour)}},
		IsPublic:  true,
		ExpiresAt: now.Add(-time.Hour),
		CreatedAt: now.Add(-48 * time.Hour),
	}
	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.ShareSnapshotRepository().Create(ctx, &snapshot))

	_, err := svc.Read(ctx, snapshot.Id, snapshot.Token)
	assertAppError(t, err, fiber.StatusGone)
}

func TestShareSnapshotIsImmutableCopy(t *testing.T) {
	ctx := context.Background()
	svc, _ := newShareService(t)

	messages := shareMessages()
	created, err := svc.Create(ctx, nil, &dto.CreateShareRequest{Messages: messages})
	require.NoError(t, err)

	// Mutating the source after sharing must not leak into the snapshot.
	messages[0].Text = "REWRITTEN"

	got, err := svc.Read(ctx, created.Id, created.Token)
	require.NoError(t, err)
	assert.Equal(t, "What is Go?", got.Messages[0].Text)
}

func TestShareRepairsMalformedMessages(t *testing.T) {
	ctx := context.Background()
	svc, _ := newShareService(t)

	created, err := svc.Create(ctx, nil, &dto.CreateShareRequest{
		Messages: []dto.ShareMessageDTO{
			{Text: "valid", Sender: "robot"}, // unknown sender, no timestamp
			{Text: "   "},                    // no text, dropped
			{Text: "reply", Sender: "ai"},
		},
	})
	require.NoError(t, err)

	got, err := svc.Read(ctx, created.Id, created.Token)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, entity.SenderUser, got.Messages[0].Sender)
	assert.False(t, got.Messages[0].Timestamp.IsZero())
	assert.Equal(t, entity.SenderAI, got.Messages[1].Sender)
}

func TestShareRejectsEmptyAfterRepair(t *testing.T) {
	ctx := context.Background()
	svc, _ := newShareService(t)

	_, err := svc.Create(ctx, nil, &dto.CreateShareRequest{
		Messages: []dto.ShareMessageDTO{{Text: "   "}},
	})
	assertAppError(t, err, fiber.StatusBadRequest)
}

func TestShareExpiryDefaultsAndClamp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newShareService(t)

	defaulted, err := svc.Create(ctx, nil, &dto.CreateShareRequest{Messages: shareMessages()})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), defaulted.ExpiresAt, time.Minute)

	clamped, err := svc.Create(ctx, nil, &dto.CreateShareRequest{
		Messages:    shareMessages(),
		ExpiresDays: 10000,
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 365), clamped.ExpiresAt, time.Minute)
}

func TestShareTitleFallsBackToFirstMessage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newShareService(t)

	created, err := svc.Create(ctx, nil, &dto.CreateShareRequest{Messages: shareMessages()})
	require.NoError(t, err)

	got, err := svc.Read(ctx, created.Id, created.Token)
	require.NoError(t, err)
	assert.Equal(t, "What is Go?", got.Title)
}

func TestShareRecordsCreator(t *testing.T) {
	ctx := context.Background()
	svc, factory := newShareService(t)

	email := "alice@example.com"
	created, err := svc.Create(ctx, &email, &dto.CreateShareRequest{Messages: shareMessages()})
	require.NoError(t, err)

	uow := factory.NewUnitOfWork(ctx)
	snapshot, err := uow.ShareSnapshotRepository().FindOne(ctx, specification.ByID{ID: created.Id})
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	require.NotNil(t, snapshot.CreatedBy)
	assert.Equal(t, email, *snapshot.CreatedBy)
}
