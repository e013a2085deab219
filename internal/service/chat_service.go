package service

import (
	"context"
	"strings"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/pkg/ai/router"
	"ai-chat-be/pkg/liveinfo"
	"ai-chat-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	// historyWindow caps how many prior messages are replayed to the model.
	historyWindow = 20

	llmCallTimeout      = 60 * time.Second
	liveinfoCallTimeout = 5 * time.Second
)

type IChatService interface {
	Send(ctx context.Context, owner entity.Owner, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type chatService struct {
	conversationService IConversationService
	llmProvider         llm.LLMProvider
	liveInfo            *liveinfo.Client
	logger              logger.ILogger
}

func NewChatService(
	conversationService IConversationService,
	llmProvider llm.LLMProvider,
	liveInfo *liveinfo.Client,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		conversationService: conversationService,
		llmProvider:         llmProvider,
		liveInfo:            liveInfo,
		logger:              sysLogger,
	}
}

func (s *chatService) Send(ctx context.Context, owner entity.Owner, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	prompt := strings.TrimSpace(req.Message)
	if prompt == "" {
		return nil, serverutils.NewValidationError("Message must not be empty")
	}

	parsed := router.Parse(prompt)

	// Time questions are answered locally, no model round-trip needed.
	if parsed.Intent == router.IntentTime {
		reply := s.liveInfo.Now(parsed.Subject)
		return s.finish(ctx, owner, req.ConversationId, parsed.Intent, prompt, reply)
	}

	history, err := s.loadHistory(ctx, owner, req.ConversationId)
	if err != nil {
		return nil, err
	}

	systemPrompt := router.BuildSystemPrompt(constant.SystemPrompt, s.gatherContext(ctx, parsed))

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: prompt})

	llmCtx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	reply, err := s.llmProvider.Chat(llmCtx, messages)
	if err != nil {
		s.logger.Error("chat", "llm call failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewUpstreamError()
	}

	return s.finish(ctx, owner, req.ConversationId, parsed.Intent, prompt, reply)
}

// gatherContext fetches live enrichment for weather/news intents. Failures
// degrade to a plain LLM call, they never abort the user's request.
func (s *chatService) gatherContext(ctx context.Context, parsed router.Request) []router.ContextBlock {
	var blocks []router.ContextBlock

	switch parsed.Intent {
	case router.IntentWeather:
		infoCtx, cancel := context.WithTimeout(ctx, liveinfoCallTimeout)
		defer cancel()
		report, err := s.liveInfo.Weather(infoCtx, parsed.Subject)
		if err != nil {
			s.logger.Warn("chat", "weather lookup failed", map[string]interface{}{
				"city":  parsed.Subject,
				"error": err.Error(),
			})
			return nil
		}
		blocks = append(blocks, router.ContextBlock{Label: "Weather", Content: report.String()})
	case router.IntentNews:
		infoCtx, cancel := context.WithTimeout(ctx, liveinfoCallTimeout)
		defer cancel()
		digest, err := s.liveInfo.News(infoCtx, parsed.Subject)
		if err != nil {
			s.logger.Warn("chat", "news lookup failed", map[string]interface{}{
				"topic": parsed.Subject,
				"error": err.Error(),
			})
			return nil
		}
		blocks = append(blocks, router.ContextBlock{Label: "News", Content: digest.String()})
	}

	return blocks
}

// loadHistory replays the tail of an existing conversation so the model sees
// prior turns. Anonymous callers get no history, they cannot own one.
func (s *chatService) loadHistory(ctx context.Context, owner entity.Owner, conversationId *uuid.UUID) ([]llm.Message, error) {
	if conversationId == nil || owner.IsZero() {
		return nil, nil
	}

	conversation, err := s.conversationService.Show(ctx, owner, *conversationId)
	if err != nil {
		return nil, err
	}

	msgs := conversation.Messages
	if len(msgs) > historyWindow {
		msgs = msgs[len(msgs)-historyWindow:]
	}

	history := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.Sender == entity.SenderAI {
			role = "assistant"
		}
		history = append(history, llm.Message{Role: role, Content: m.Text})
	}
	return history, nil
}

// finish persists the turn when the caller has a resolvable owner and shapes
// the response. Anonymous exchanges are answered but never stored.
func (s *chatService) finish(ctx context.Context, owner entity.Owner, conversationId *uuid.UUID, intent router.Intent, prompt, reply string) (*dto.SendChatResponse, error) {
	now := time.Now()
	userMsg := entity.Message{Text: prompt, Sender: entity.SenderUser, Timestamp: now}
	aiMsg := entity.Message{Text: reply, Sender: entity.SenderAI, Timestamp: time.Now()}

	resp := &dto.SendChatResponse{
		Reply:  dto.MessageDTO{Text: aiMsg.Text, Sender: aiMsg.Sender, Timestamp: aiMsg.Timestamp},
		Intent: string(intent),
	}

	if owner.IsZero() {
		return resp, nil
	}

	conversation, err := s.conversationService.RecordTurn(ctx, owner, conversationId, userMsg, aiMsg)
	if err != nil {
		return nil, err
	}

	resp.ConversationId = &conversation.Id
	resp.Title = conversation.Title
	resp.Persisted = true
	return resp, nil
}
