package controller

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService  service.IChatService
	guestService service.IGuestSessionService
}

func NewChatController(
	chatService service.IChatService,
	guestService service.IGuestSessionService,
) IChatController {
	return &chatController{
		chatService:  chatService,
		guestService: guestService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Use(serverutils.ResolveIdentity(c.guestService))
	h.Post("", c.Send)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Send(ctx.Context(), ownerFromCtx(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}
