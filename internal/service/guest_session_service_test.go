package service

import (
	"context"
	"testing"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuestService(t *testing.T) (IGuestSessionService, unitofwork.RepositoryFactory) {
	factory := newTestFactory(t)
	return NewGuestSessionService(factory, 30, nopLogger{}), factory
}

func newConversationServiceFor(factory unitofwork.RepositoryFactory) IConversationService {
	return NewConversationService(factory, nil, nopLogger{})
}

func turn(prompt, reply string) (entity.Message, entity.Message) {
	now := time.Now()
	return entity.Message{Text: prompt, Sender: entity.SenderUser, Timestamp: now},
		entity.Message{Text: reply, Sender: entity.SenderAI, Timestamp: now}
}

func TestGuestSessionCreateAndVerify(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGuestService(t)

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, created.Token)
	assert.NotEqual(t, uuid.Nil, created.Id)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), created.ExpiresAt, time.Minute)

	verified, err := svc.Verify(ctx, &dto.VerifyGuestSessionRequest{Token: created.Token})
	require.NoError(t, err)
	assert.True(t, verified.Valid)
	assert.Equal(t, created.Id, verified.Id)
}

func TestGuestSessionVerifyUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGuestService(t)

	_, err := svc.Verify(ctx, &dto.VerifyGuestSessionRequest{Token: "not-a-real-token"})
	assertAppError(t, err, fiber.StatusNotFound)
}

func TestGuestSessionVerifyExpired(t *testing.T) {
	ctx := context.Background()
	svc, factory := newGuestService(t)

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	// Force the session into the past; expiry is checked at read time.
	uow := factory.NewUnitOfWork(ctx)
	session := &entity.GuestSession{
		Id:           created.Id,
		Token:        created.Token,
		CreatedAt:    time.Now().Add(-31 * 24 * time.Hour),
		ExpiresAt:    time.Now().Add(-24 * time.Hour),
		LastActivity: time.Now().Add(-31 * 24 * time.Hour),
	}
	require.NoError(t, uow.GuestSessionRepository().Update(ctx, session))

	_, err = svc.Verify(ctx, &dto.VerifyGuestSessionRequest{Token: created.Token})
	assertAppError(t, err, fiber.StatusNotFound)
}

func TestGuestSessionVerifyRefreshesLastActivity(t *testing.T) {
	ctx := context.Background()
	svc, factory := newGuestService(t)

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	uow := factory.NewUnitOfWork(ctx)
	before, err := uow.GuestSessionRepository().FindOne(ctx)
	require.NoError(t, err)
	require.NotNil(t, before)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.Verify(ctx, &dto.VerifyGuestSessionRequest{Token: created.Token})
	require.NoError(t, err)

	after, err := uow.GuestSessionRepository().FindOne(ctx)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.True(t, after.LastActivity.After(before.LastActivity))
}

func TestGuestMigration(t *testing.T) {
	ctx := context.Background()
	svc, factory := newGuestService(t)
	conversations := newConversationServiceFor(factory)

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	guestOwner := entity.Owner{GuestSessionId: &created.Id}

	for i := 0; i < 3; i++ {
		userMsg, aiMsg := turn("hello there", "hi")
		_, err := conversations.RecordTurn(ctx, guestOwner, nil, userMsg, aiMsg)
		require.NoError(t, err)
	}

	res, err := svc.Migrate(ctx, created.Token, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Migrated)

	userOwner := entity.Owner{UserEmail: "alice@example.com"}
	userList, err := conversations.List(ctx, userOwner)
	require.NoError(t, err)
	assert.Len(t, userList, 3)

	guestList, err := conversations.List(ctx, guestOwner)
	require.NoError(t, err)
	assert.Empty(t, guestList)

	// The token is dead after migration.
	_, err = svc.Verify(ctx, &dto.VerifyGuestSessionRequest{Token: created.Token})
	assertAppError(t, err, fiber.StatusNotFound)

	// A second migrate is indistinguishable from a bogus token.
	_, err = svc.Migrate(ctx, created.Token, "alice@example.com")
	assertAppError(t, err, fiber.StatusNotFound)
}

func TestGuestMigrationWithoutConversations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGuestService(t)

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	res, err := svc.Migrate(ctx, created.Token, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Migrated)

	_, err = svc.Verify(ctx, &dto.VerifyGuestSessionRequest{Token: created.Token})
	assertAppError(t, err, fiber.StatusNotFound)
}

func TestGuestMigrationUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGuestService(t)

	_, err := svc.Migrate(ctx, "bogus-token", "carol@example.com")
	assertAppError(t, err, fiber.StatusNotFound)
}
