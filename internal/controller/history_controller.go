package controller

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type historyController struct {
	conversationService service.IConversationService
	guestService        service.IGuestSessionService
}

func NewHistoryController(
	conversationService service.IConversationService,
	guestService service.IGuestSessionService,
) IHistoryController {
	return &historyController{
		conversationService: conversationService,
		guestService:        guestService,
	}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/history")
	h.Use(serverutils.ResolveIdentity(c.guestService))
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *historyController) List(ctx *fiber.Ctx) error {
	res, err := c.conversationService.List(ctx.Context(), ownerFromCtx(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list conversations", res))
}

func (c *historyController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("Invalid conversation id")
	}

	res, err := c.conversationService.Show(ctx.Context(), ownerFromCtx(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get conversation", res))
}

func (c *historyController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("Invalid conversation id")
	}

	var req dto.UpdateConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.conversationService.Update(ctx.Context(), ownerFromCtx(ctx), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update conversation", res))
}

func (c *historyController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("Invalid conversation id")
	}

	if err := c.conversationService.Delete(ctx.Context(), ownerFromCtx(ctx), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete conversation", fiber.Map{"id": id}))
}
