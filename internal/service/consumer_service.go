package service

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const chatTitlePreviewMaxLen = 100

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService keeps the guest session's denormalized chat_title preview in
// sync with the latest conversation activity.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ChatActivityMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Warn("consumer", "failed to unmarshal chat activity", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	repo := uow.GuestSessionRepository()

	session, err := repo.FindOne(ctx, specification.ByID{ID: payload.GuestSessionId})
	if err != nil {
		cs.logger.Error("consumer", "failed to load guest session", map[string]interface{}{
			"session_id": payload.GuestSessionId.String(),
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}
	if session == nil {
		// Session already migrated or expired, nothing to sync.
		msg.Ack()
		return
	}

	title := strings.TrimSpace(payload.Title)
	if utf8.RuneCountInString(title) > chatTitlePreviewMaxLen {
		title = string([]rune(title)[:chatTitlePreviewMaxLen])
	}
	session.ChatTitle = &title

	if err := repo.Update(ctx, session); err != nil {
		cs.logger.Error("consumer", "failed to update chat title preview", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
