package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	titleMaxLen = 50

	// appendAttempts bounds the compare-and-swap retry loop on concurrent turns.
	appendAttempts = 3
)

type IConversationService interface {
	RecordTurn(ctx context.Context, owner entity.Owner, conversationId *uuid.UUID, userMsg, aiMsg entity.Message) (*entity.Conversation, error)
	List(ctx context.Context, owner entity.Owner) ([]*dto.ConversationSummaryResponse, error)
	Show(ctx context.Context, owner entity.Owner, id uuid.UUID) (*dto.ConversationResponse, error)
	Update(ctx context.Context, owner entity.Owner, id uuid.UUID, req *dto.UpdateConversationRequest) (*dto.ConversationResponse, error)
	Delete(ctx context.Context, owner entity.Owner, id uuid.UUID) error
}

type conversationService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
) IConversationService {
	return &conversationService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           sysLogger,
	}
}

func ownerSpec(owner entity.Owner) specification.Specification {
	if owner.UserEmail != "" {
		return specification.OwnedByUser{Email: owner.UserEmail}
	}
	return specification.OwnedByGuestSession{GuestSessionID: *owner.GuestSessionId}
}

// titleFromPrompt derives the default title from the first user message.
func titleFromPrompt(prompt string) string {
	title := strings.TrimSpace(prompt)
	if idx := strings.IndexByte(title, '\n'); idx >= 0 {
		title = title[:idx]
	}
	if utf8.RuneCountInString(title) > titleMaxLen {
		runes := []rune(title)
		title = string(runes[:titleMaxLen])
	}
	if title == "" {
		title = "New conversation"
	}
	return title
}

func (c *conversationService) RecordTurn(ctx context.Context, owner entity.Owner, conversationId *uuid.UUID, userMsg, aiMsg entity.Message) (*entity.Conversation, error) {
	if owner.IsZero() {
		return nil, serverutils.NewValidationError("No resolvable owner for this conversation")
	}
	if strings.TrimSpace(userMsg.Text) == "" || strings.TrimSpace(aiMsg.Text) == "" {
		return nil, serverutils.NewValidationError("Prompt and response must not be empty")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ConversationRepository()

	var conversation *entity.Conversation

	if conversationId == nil {
		conversation = &entity.Conversation{
			Id:        uuid.New(),
			Title:     titleFromPrompt(userMsg.Text),
			Messages:  []entity.Message{userMsg, aiMsg},
			Pinned:    false,
			CreatedAt: time.Now(),
		}
		if owner.UserEmail != "" {
			email := owner.UserEmail
			conversation.UserId = &email
		} else {
			conversation.GuestSessionId = owner.GuestSessionId
		}

		if err := repo.Create(ctx, conversation); err != nil {
			c.logger.Error("conversation", "failed to create conversation", map[string]interface{}{"error": err.Error()})
			return nil, serverutils.NewStoreError()
		}
	} else {
		var err error
		conversation, err = c.appendTurn(ctx, repo, owner, *conversationId, userMsg, aiMsg)
		if err != nil {
			return nil, err
		}
	}

	c.publishActivity(ctx, conversation)
	return conversation, nil
}

// appendTurn is a guarded read-modify-write: the version column acts as a
// compare-and-swap so two concurrent turns on the same conversation cannot
// silently clobber each other.
func (c *conversationService) appendTurn(ctx context.Context, repo contract.ConversationRepository, owner entity.Owner, id uuid.UUID, userMsg, aiMsg entity.Message) (*entity.Conversation, error) {
	for attempt := 0; attempt < appendAttempts; attempt++ {
		conversation, err := repo.FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			c.logger.Error("conversation", "failed to load conversation", map[string]interface{}{
				"conversation_id": id.String(),
				"error":           err.Error(),
			})
			return nil, serverutils.NewStoreError()
		}
		if conversation == nil {
			return nil, serverutils.NewNotFoundError("Conversation not found")
		}
		if !conversation.OwnedBy(owner) {
			return nil, serverutils.NewForbiddenError("You do not own this conversation")
		}

		messages := append(append([]entity.Message{}, conversation.Messages...), userMsg, aiMsg)
		ok, err := repo.AppendMessages(ctx, id, messages, conversation.Version)
		if err != nil {
			c.logger.Error("conversation", "failed to append turn", map[string]interface{}{
				"conversation_id": id.String(),
				"error":           err.Error(),
			})
			return nil, serverutils.NewStoreError()
		}
		if ok {
			now := time.Now()
			conversation.Messages = messages
			conversation.Version++
			conversation.UpdatedAt = &now
			return conversation, nil
		}
		// Version conflict: another writer got there first, re-read and retry.
	}

	c.logger.Warn("conversation", "append retries exhausted", map[string]interface{}{"conversation_id": id.String()})
	return nil, serverutils.NewStoreError()
}

// publishActivity feeds the denormalized chat_title preview on guest sessions.
func (c *conversationService) publishActivity(ctx context.Context, conversation *entity.Conversation) {
	if c.publisherService == nil || conversation.GuestSessionId == nil {
		return
	}
	payload, err := json.Marshal(dto.ChatActivityMessage{
		GuestSessionId: *conversation.GuestSessionId,
		Title:          conversation.Title,
	})
	if err != nil {
		return
	}
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		c.logger.Warn("conversation", "failed to publish chat activity", map[string]interface{}{"error": err.Error()})
	}
}

func (c *conversationService) List(ctx context.Context, owner entity.Owner) ([]*dto.ConversationSummaryResponse, error) {
	if owner.IsZero() {
		return nil, serverutils.NewUnauthorizedError("Sign in or provide a guest token to view history")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	conversations, err := uow.ConversationRepository().FindAll(ctx, ownerSpec(owner), specification.PinnedFirst{})
	if err != nil {
		c.logger.Error("conversation", "failed to list conversations", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewStoreError()
	}

	result := make([]*dto.ConversationSummaryResponse, 0, len(conversations))
	for _, conversation := range conversations {
		result = append(result, &dto.ConversationSummaryResponse{
			Id:           conversation.Id,
			Title:        conversation.Title,
			Pinned:       conversation.Pinned,
			MessageCount: len(conversation.Messages),
			CreatedAt:    conversation.CreatedAt,
			UpdatedAt:    conversation.UpdatedAt,
		})
	}
	return result, nil
}

// loadOwned fetches a conversation and enforces the ownership contract shared
// by every user-facing read and mutation.
func (c *conversationService) loadOwned(ctx context.Context, uow unitofwork.UnitOfWork, owner entity.Owner, id uuid.UUID) (*entity.Conversation, error) {
	if owner.IsZero() {
		return nil, serverutils.NewUnauthorizedError("Sign in or provide a guest token to view history")
	}

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		c.logger.Error("conversation", "failed to load conversation", map[string]interface{}{
			"conversation_id": id.String(),
			"error":           err.Error(),
		})
		return nil, serverutils.NewStoreError()
	}
	if conversation == nil {
		return nil, serverutils.NewNotFoundError("Conversation not found")
	}
	if !conversation.OwnedBy(owner) {
		return nil, serverutils.NewForbiddenError("You do not own this conversation")
	}
	return conversation, nil
}

func toConversationResponse(conversation *entity.Conversation) *dto.ConversationResponse {
	messages := make([]dto.MessageDTO, 0, len(conversation.Messages))
	for _, m := range conversation.Messages {
		messages = append(messages, dto.MessageDTO{Text: m.Text, Sender: m.Sender, Timestamp: m.Timestamp})
	}
	return &dto.ConversationResponse{
		Id:        conversation.Id,
		Title:     conversation.Title,
		Pinned:    conversation.Pinned,
		Messages:  messages,
		CreatedAt: conversation.CreatedAt,
		UpdatedAt: conversation.UpdatedAt,
	}
}

func (c *conversationService) Show(ctx context.Context, owner entity.Owner, id uuid.UUID) (*dto.ConversationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	conversation, err := c.loadOwned(ctx, uow, owner, id)
	if err != nil {
		return nil, err
	}
	return toConversationResponse(conversation), nil
}

func (c *conversationService) Update(ctx context.Context, owner entity.Owner, id uuid.UUID, req *dto.UpdateConversationRequest) (*dto.ConversationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	conversation, err := c.loadOwned(ctx, uow, owner, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, serverutils.NewValidationError("Title must not be empty")
		}
		conversation.Title = title
		changed = true
	}
	if req.Pinned != nil {
		conversation.Pinned = *req.Pinned
		changed = true
	}

	if changed {
		if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
			c.logger.Error("conversation", "failed to update conversation", map[string]interface{}{
				"conversation_id": id.String(),
				"error":           err.Error(),
			})
			return nil, serverutils.NewStoreError()
		}
	}

	if req.IsDeleted != nil && *req.IsDeleted {
		if err := uow.ConversationRepository().Delete(ctx, id); err != nil {
			c.logger.Error("conversation", "failed to soft delete conversation", map[string]interface{}{
				"conversation_id": id.String(),
				"error":           err.Error(),
			})
			return nil, serverutils.NewStoreError()
		}
		now := time.Now()
		conversation.IsDeleted = true
		conversation.DeletedAt = &now
	}

	return toConversationResponse(conversation), nil
}

func (c *conversationService) Delete(ctx context.Context, owner entity.Owner, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if _, err := c.loadOwned(ctx, uow, owner, id); err != nil {
		return err
	}

	if err := uow.ConversationRepository().Delete(ctx, id); err != nil {
		c.logger.Error("conversation", "failed to soft delete conversation", map[string]interface{}{
			"conversation_id": id.String(),
			"error":           err.Error(),
		})
		return serverutils.NewStoreError()
	}
	return nil
}
