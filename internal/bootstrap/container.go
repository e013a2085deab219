package bootstrap

import (
	"context"
	"log"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/controller"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/internal/service"
	"ai-chat-be/pkg/liveinfo"
	"ai-chat-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const chatActivityTopic = "CHAT_ACTIVITY"

type Container struct {
	// Controllers
	GuestController   controller.IGuestController
	ChatController    controller.IChatController
	HistoryController controller.IHistoryController
	ShareController   controller.IShareController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// Redis is an optional read cache for share snapshots; the service falls
	// back to the database when it is unreachable.
	var rdb *redis.Client
	if opt, err := redis.ParseURL(cfg.App.RedisURL); err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Snapshot cache disabled", err)
	} else {
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Snapshot cache disabled", err)
			rdb = nil
		}
	}

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.GroqAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	liveInfoClient := liveinfo.NewClient(cfg.Keys.OpenWeather, cfg.Keys.NewsAPI)

	// 4. Services
	publisherService := service.NewPublisherService(chatActivityTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, chatActivityTopic, uowFactory, sysLogger)

	guestService := service.NewGuestSessionService(uowFactory, cfg.Guest.SessionTTLDays, sysLogger)
	conversationService := service.NewConversationService(uowFactory, publisherService, sysLogger)
	shareService := service.NewShareService(
		uowFactory,
		rdb,
		cfg.Share.DefaultExpiryDays,
		cfg.Share.MaxExpiryDays,
		sysLogger,
	)
	chatService := service.NewChatService(conversationService, llmProvider, liveInfoClient, sysLogger)

	// 5. Controllers
	return &Container{
		GuestController:   controller.NewGuestController(guestService),
		ChatController:    controller.NewChatController(chatService, guestService),
		HistoryController: controller.NewHistoryController(conversationService, guestService),
		ShareController:   controller.NewShareController(shareService, guestService),

		ConsumerService: consumerService,
	}
}
