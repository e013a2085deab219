package service

import (
	"context"
	"strings"
	"testing"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleFromPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"short prompt", "Hello world", "Hello world"},
		{"trimmed", "  Hello  ", "Hello"},
		{"first line only", "First line\nsecond line", "First line"},
		{"truncated to 50 runes", strings.Repeat("a", 80), strings.Repeat("a", 50)},
		{"empty falls back", "   ", "New conversation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titleFromPrompt(tt.prompt)
			if got != tt.want {
				t.Errorf("titleFromPrompt(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestRecordTurnCreatesAndAppends(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := newConversationServiceFor(factory)

	sessionId := uuid.New()
	owner := entity.Owner{GuestSessionId: &sessionId}

	userMsg, aiMsg := turn("What is Go?", "A programming language.")
	conversation, err := svc.RecordTurn(ctx, owner, nil, userMsg, aiMsg)
	require.NoError(t, err)
	assert.Equal(t, "What is Go?", conversation.Title)
	assert.Len(t, conversation.Messages, 2)
	assert.False(t, conversation.Pinned)

	userMsg2, aiMsg2 := turn("Who made it?", "Google.")
	conversation, err = svc.RecordTurn(ctx, owner, &conversation.Id, userMsg2, aiMsg2)
	require.NoError(t, err)
	assert.Len(t, conversation.Messages, 4)
	assert.Equal(t, int64(1), conversation.Version)
}

func TestRecordTurnAnonymousIsDropped(t *testing.T) {
	ctx := context.Background()
	svc := newConversationServiceFor(newTestFactory(t))

	userMsg, aiMsg := turn("hello", "hi")
	_, err := svc.RecordTurn(ctx, entity.Owner{}, nil, userMsg, aiMsg)
	assertAppError(t, err, fiber.StatusBadRequest)
}

func TestGuestChatScenario(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	guests := NewGuestSessionService(factory, 30, nopLogger{})
	svc := newConversationServiceFor(factory)

	session, err := guests.Create(ctx)
	require.NoError(t, err)
	owner := entity.Owner{GuestSessionId: &session.Id}

	longPrompt := "Explain the difference between goroutines and operating system threads in detail please"
	userMsg, aiMsg := turn(longPrompt, "Sure.")
	conversation, err := svc.RecordTurn(ctx, owner, nil, userMsg, aiMsg)
	require.NoError(t, err)

	userMsg2, aiMsg2 := turn("And channels?", "Also sure.")
	_, err = svc.RecordTurn(ctx, owner, &conversation.Id, userMsg2, aiMsg2)
	require.NoError(t, err)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 4, list[0].MessageCount)
	assert.Equal(t, string([]rune(longPrompt)[:50]), list[0].Title)
	assert.False(t, list[0].Pinned)
}

func TestListPinnedFirst(t *testing.T) {
	ctx := context.Background()
	svc := newConversationServiceFor(newTestFactory(t))

	sessionId := uuid.New()
	owner := entity.Owner{GuestSessionId: &sessionId}

	var ids []uuid.UUID
	for _, prompt := range []string{"first", "second", "third"} {
		userMsg, aiMsg := turn(prompt, "ok")
		conversation, err := svc.RecordTurn(ctx, owner, nil, userMsg, aiMsg)
		require.NoError(t, err)
		ids = append(ids, conversation.Id)
	}

	// Pin the oldest; it must sort before newer unpinned ones.
	pinned := true
	_, err := svc.Update(ctx, owner, ids[0], &dto.UpdateConversationRequest{Pinned: &pinned})
	require.NoError(t, err)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[0], list[0].Id)
	assert.True(t, list[0].Pinned)
}

func TestSoftDeleteExcludedFromListAndShow(t *testing.T) {
	ctx := context.Background()
	svc := newConversationServiceFor(newTestFactory(t))

	sessionId := uuid.New()
	owner := entity.Owner{GuestSessionId: &sessionId}

	userMsg, aiMsg := turn("keep me", "ok")
	kept, err := svc.RecordTurn(ctx, owner, nil, userMsg, aiMsg)
	require.NoError(t, err)

	userMsg2, aiMsg2 := turn("delete me", "ok")
	deleted, err := svc.RecordTurn(ctx, owner, nil, userMsg2, aiMsg2)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, deleted.Id))

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, kept.Id, list[0].Id)

	_, err = svc.Show(ctx, owner, deleted.Id)
	assertAppError(t, err, fiber.StatusNotFound)

	// Appending to a deleted conversation also reads as not found.
	userMsg3, aiMsg3 := turn("still there?", "no")
	_, err = svc.RecordTurn(ctx, owner, &deleted.Id, userMsg3, aiMsg3)
	assertAppError(t, err, fiber.StatusNotFound)
}

func TestOwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	svc := newConversationServiceFor(newTestFactory(t))

	aliceSession := uuid.New()
	alice := entity.Owner{GuestSessionId: &aliceSession}
	mallorySession := uuid.New()
	mallory := entity.Owner{GuestSessionId: &mallorySession}

	userMsg, aiMsg := turn("private", "ok")
	conversation, err := svc.RecordTurn(ctx, alice, nil, userMsg, aiMsg)
	require.NoError(t, err)

	_, err = svc.Show(ctx, mallory, conversation.Id)
	assertAppError(t, err, fiber.StatusForbidden)

	title := "stolen"
	_, err = svc.Update(ctx, mallory, conversation.Id, &dto.UpdateConversationRequest{Title: &title})
	assertAppError(t, err, fiber.StatusForbidden)

	err = svc.Delete(ctx, mallory, conversation.Id)
	assertAppError(t, err, fiber.StatusForbidden)

	userMsg2, aiMsg2 := turn("inject", "no")
	_, err = svc.RecordTurn(ctx, mallory, &conversation.Id, userMsg2, aiMsg2)
	assertAppError(t, err, fiber.StatusForbidden)

	// The rightful owner is unaffected.
	got, err := svc.Show(ctx, alice, conversation.Id)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)
}

func TestUpdateRenamePinAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newConversationServiceFor(newTestFactory(t))

	sessionId := uuid.New()
	owner := entity.Owner{GuestSessionId: &sessionId}

	userMsg, aiMsg := turn("original", "ok")
	conversation, err := svc.RecordTurn(ctx, owner, nil, userMsg, aiMsg)
	require.NoError(t, err)

	title := "Renamed"
	pinned := true
	updated, err := svc.Update(ctx, owner, conversation.Id, &dto.UpdateConversationRequest{Title: &title, Pinned: &pinned})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.Pinned)

	empty := "   "
	_, err = svc.Update(ctx, owner, conversation.Id, &dto.UpdateConversationRequest{Title: &empty})
	assertAppError(t, err, fiber.StatusBadRequest)

	isDeleted := true
	_, err = svc.Update(ctx, owner, conversation.Id, &dto.UpdateConversationRequest{IsDeleted: &isDeleted})
	require.NoError(t, err)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListRequiresOwner(t *testing.T) {
	ctx := context.Background()
	svc := newConversationServiceFor(newTestFactory(t))

	_, err := svc.List(ctx, entity.Owner{})
	assertAppError(t, err, fiber.StatusUnauthorized)
}
