package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IGuestSessionService interface {
	Create(ctx context.Context) (*dto.CreateGuestSessionResponse, error)
	Verify(ctx context.Context, req *dto.VerifyGuestSessionRequest) (*dto.VerifyGuestSessionResponse, error)
	VerifyToken(ctx context.Context, token string) (uuid.UUID, error)
	Migrate(ctx context.Context, guestToken, userEmail string) (*dto.MigrateGuestResponse, error)
}

type guestSessionService struct {
	uowFactory unitofwork.RepositoryFactory
	ttl        time.Duration
	logger     logger.ILogger
}

func NewGuestSessionService(
	uowFactory unitofwork.RepositoryFactory,
	ttlDays int,
	sysLogger logger.ILogger,
) IGuestSessionService {
	return &guestSessionService{
		uowFactory: uowFactory,
		ttl:        time.Duration(ttlDays) * 24 * time.Hour,
		logger:     sysLogger,
	}
}

// newBearerToken returns a URL-safe random token carrying n bytes of entropy.
func newBearerToken(n int) (string, error) {
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func (s *guestSessionService) Create(ctx context.Context) (*dto.CreateGuestSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	token, err := newBearerToken(32) // 256 bits
	if err != nil {
		s.logger.Error("guest", "token generation failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewStoreError()
	}

	now := time.Now()
	session := entity.GuestSession{
		Id:           uuid.New(),
		Token:        token,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
		LastActivity: now,
	}

	if err := uow.GuestSessionRepository().Create(ctx, &session); err != nil {
		s.logger.Error("guest", "failed to create guest session", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewStoreError()
	}

	return &dto.CreateGuestSessionResponse{
		Id:        session.Id,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// resolve loads a session by token and treats unknown and expired identically.
func (s *guestSessionService) resolve(ctx context.Context, uow unitofwork.UnitOfWork, token string) (*entity.GuestSession, error) {
	session, err := uow.GuestSessionRepository().FindOne(ctx, specification.ByGuestToken{Token: token})
	if err != nil {
		s.logger.Error("guest", "session lookup failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewStoreError()
	}
	if session == nil || session.Expired(time.Now()) {
		return nil, serverutils.NewNotFoundError("Session not found or expired")
	}
	return session, nil
}

func (s *guestSessionService) Verify(ctx context.Context, req *dto.VerifyGuestSessionRequest) (*dto.VerifyGuestSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.resolve(ctx, uow, req.Token)
	if err != nil {
		return nil, err
	}

	// Every verify doubles as a keep-alive.
	session.LastActivity = time.Now()
	if err := uow.GuestSessionRepository().Update(ctx, session); err != nil {
		s.logger.Error("guest", "failed to refresh last_activity", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		return nil, serverutils.NewStoreError()
	}

	return &dto.VerifyGuestSessionResponse{
		Valid:     true,
		Id:        session.Id,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *guestSessionService) VerifyToken(ctx context.Context, token string) (uuid.UUID, error) {
	res, err := s.Verify(ctx, &dto.VerifyGuestSessionRequest{Token: token})
	if err != nil {
		return uuid.Nil, err
	}
	return res.Id, nil
}

// Migrate re-owns every conversation of the guest session to the authenticated
// user, then retires the session. Calling it again with the now-dead token
// yields the same "Invalid session" a bogus token would, which clients treat
// as "nothing left to do".
func (s *guestSessionService) Migrate(ctx context.Context, guestToken, userEmail string) (*dto.MigrateGuestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.GuestSessionRepository().FindOne(ctx, specification.ByGuestToken{Token: guestToken})
	if err != nil {
		s.logger.Error("guest", "migration lookup failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewStoreError()
	}
	if session == nil || session.Expired(time.Now()) {
		return nil, serverutils.NewNotFoundError("Invalid session")
	}

	migrated, err := uow.ConversationRepository().ReassignOwner(ctx, session.Id, userEmail)
	if err != nil {
		// Session intentionally kept: a retry can finish a partial migration.
		s.logger.Error("guest", "migration bulk update failed", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		return nil, serverutils.NewStoreError()
	}

	if err := uow.GuestSessionRepository().Delete(ctx, session.Id); err != nil {
		// Conversations already moved; the next migrate call finds zero rows
		// and retires the session then.
		s.logger.Error("guest", "failed to delete migrated session", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}

	s.logger.Info("guest", "guest session migrated", map[string]interface{}{
		"session_id": session.Id.String(),
		"token":      logger.TokenPreview(guestToken),
		"migrated":   migrated,
	})

	return &dto.MigrateGuestResponse{Migrated: migrated}, nil
}
