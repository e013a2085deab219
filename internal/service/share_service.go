package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"strings"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const shareCacheMaxTTL = time.Hour

type IShareService interface {
	Create(ctx context.Context, createdBy *string, req *dto.CreateShareRequest) (*dto.CreateShareResponse, error)
	Read(ctx context.Context, id uuid.UUID, token string) (*dto.ShareSnapshotResponse, error)
}

type shareService struct {
	uowFactory        unitofwork.RepositoryFactory
	rdb               *redis.Client // optional read cache for immutable snapshots
	defaultExpiryDays int
	maxExpiryDays     int
	logger            logger.ILogger
}

func NewShareService(
	uowFactory unitofwork.RepositoryFactory,
	rdb *redis.Client,
	defaultExpiryDays, maxExpiryDays int,
	sysLogger logger.ILogger,
) IShareService {
	return &shareService{
		uowFactory:        uowFactory,
		rdb:               rdb,
		defaultExpiryDays: defaultExpiryDays,
		maxExpiryDays:     maxExpiryDays,
		logger:            sysLogger,
	}
}

// repairMessages applies the leniency policy: malformed entries get safe
// defaults (missing timestamp -> now, unknown sender -> "user") instead of
// failing the whole share. Entries without text are dropped.
func repairMessages(raw []dto.ShareMessageDTO) []entity.Message {
	now := time.Now()
	messages := make([]entity.Message, 0, len(raw))
	for _, m := range raw {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		sender := m.Sender
		if sender != entity.SenderUser && sender != entity.SenderAI {
			sender = entity.SenderUser
		}
		timestamp := now
		if m.Timestamp != nil {
			timestamp = *m.Timestamp
		}
		messages = append(messages, entity.Message{Text: text, Sender: sender, Timestamp: timestamp})
	}
	return messages
}

func (s *shareService) Create(ctx context.Context, createdBy *string, req *dto.CreateShareRequest) (*dto.CreateShareResponse, error) {
	messages := repairMessages(req.Messages)
	if len(messages) == 0 {
		return nil, serverutils.NewValidationError("Messages must contain at least one entry with text")
	}

	expiresDays := req.ExpiresDays
	if expiresDays <= 0 {
		expiresDays = s.defaultExpiryDays
	}
	if expiresDays > s.maxExpiryDays {
		expiresDays = s.maxExpiryDays
	}

	token, err := newBearerToken(24) // 192 bits, independent of session tokens
	if err != nil {
		s.logger.Error("share", "token generation failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewStoreError()
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = titleFromPrompt(messages[0].Text)
	}

	snapshot := entity.ShareSnapshot{
		Id:        uuid.New(),
		Token:     token,
		Title:     title,
		Messages:  messages,
		CreatedBy: createdBy,
		IsPublic:  isPublic,
		ExpiresAt: time.Now().AddDate(0, 0, expiresDays),
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ShareSnapshotRepository().Create(ctx, &snapshot); err != nil {
		s.logger.Error("share", "failed to create snapshot", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewStoreError()
	}

	return &dto.CreateShareResponse{
		Id:        snapshot.Id,
		Token:     snapshot.Token,
		ExpiresAt: snapshot.ExpiresAt,
	}, nil
}

func shareCacheKey(id uuid.UUID) string {
	return "share:" + id.String()
}

func (s *shareService) fromCache(ctx context.Context, id uuid.UUID) *entity.ShareSnapshot {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, shareCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var snapshot entity.ShareSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

func (s *shareService) toCache(ctx context.Context, snapshot *entity.ShareSnapshot) {
	if s.rdb == nil {
		return
	}
	ttl := time.Until(snapshot.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if ttl > shareCacheMaxTTL {
		ttl = shareCacheMaxTTL
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, shareCacheKey(snapshot.Id), raw, ttl).Err(); err != nil {
		s.logger.Warn("share", "snapshot cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *shareService) Read(ctx context.Context, id uuid.UUID, token string) (*dto.ShareSnapshotResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	snapshot := s.fromCache(ctx, id)
	if snapshot == nil {
		var err error
		snapshot, err = uow.ShareSnapshotRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			s.logger.Error("share", "snapshot lookup failed", map[string]interface{}{
				"share_id": id.String(),
				"error":    err.Error(),
			})
			return nil, serverutils.NewStoreError()
		}
		if snapshot == nil {
			return nil, serverutils.NewNotFoundError("Share not found")
		}
		s.toCache(ctx, snapshot)
	}

	// A wrong token gets the same answer as a missing id.
	if subtle.ConstantTimeCompare([]byte(snapshot.Token), []byte(token)) != 1 {
		return nil, serverutils.NewNotFoundError("Share not found")
	}
	if snapshot.Expired(time.Now()) {
		return nil, serverutils.NewGoneError("This share link has expired")
	}

	// Best-effort view counter: a failed increment never fails the read.
	viewCount := snapshot.ViewCount
	if err := uow.ShareSnapshotRepository().IncrementViewCount(ctx, id); err != nil {
		s.logger.Warn("share", "view count increment failed", map[string]interface{}{
			"share_id": id.String(),
			"error":    err.Error(),
		})
	} else {
		viewCount++
	}

	messages := make([]dto.MessageDTO, 0, len(snapshot.Messages))
	for _, m := range snapshot.Messages {
		messages = append(messages, dto.MessageDTO{Text: m.Text, Sender: m.Sender, Timestamp: m.Timestamp})
	}

	return &dto.ShareSnapshotResponse{
		Id:        snapshot.Id,
		Title:     snapshot.Title,
		Messages:  messages,
		IsPublic:  snapshot.IsPublic,
		ViewCount: viewCount,
		CreatedAt: snapshot.CreatedAt,
		ExpiresAt: snapshot.ExpiresAt,
	}, nil
}
