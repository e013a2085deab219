package controller

import (
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// ownerFromCtx maps the resolved request identity onto the store's owner key.
func ownerFromCtx(ctx *fiber.Ctx) entity.Owner {
	identity := serverutils.IdentityFromCtx(ctx)
	return entity.Owner{
		UserEmail:      identity.UserEmail,
		GuestSessionId: identity.GuestSessionId,
	}
}
