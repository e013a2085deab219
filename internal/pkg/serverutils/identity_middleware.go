package serverutils

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocalUserEmail      = "user_email"
	LocalGuestSessionId = "guest_session_id"

	HeaderGuestToken = "X-Guest-Token"
)

// GuestVerifier is the slice of the guest session service the resolver needs.
type GuestVerifier interface {
	VerifyToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Identity is the per-request owner resolution result. Exactly one of UserEmail
// or GuestSessionId is set; when neither is, the request is anonymous and
// history writes must be skipped entirely.
type Identity struct {
	UserEmail      string
	GuestSessionId *uuid.UUID
}

func (i Identity) IsAnonymous() bool {
	return i.UserEmail == "" && i.GuestSessionId == nil
}

// ResolveIdentity decides the single owner key for the request.
// Priority: authenticated user, then verified guest token, then anonymous.
// An authenticated user always wins; the guest header is ignored for writes.
// Resolution happens on every request, never cached.
func ResolveIdentity(verifier GuestVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if email := parseUserEmail(ctx); email != "" {
			ctx.Locals(LocalUserEmail, email)
			return ctx.Next()
		}

		if token := ctx.Get(HeaderGuestToken); token != "" {
			if sessionId, err := verifier.VerifyToken(ctx.Context(), token); err == nil {
				ctx.Locals(LocalGuestSessionId, sessionId)
			}
			// Unknown or expired tokens fall through to anonymous.
		}

		return ctx.Next()
	}
}

// IdentityFromCtx reads the identity the resolver stored on the request.
func IdentityFromCtx(ctx *fiber.Ctx) Identity {
	identity := Identity{}
	if email, ok := ctx.Locals(LocalUserEmail).(string); ok {
		identity.UserEmail = email
	}
	if sessionId, ok := ctx.Locals(LocalGuestSessionId).(uuid.UUID); ok {
		identity.GuestSessionId = &sessionId
	}
	return identity
}
