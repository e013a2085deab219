package controller

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IShareController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Read(ctx *fiber.Ctx) error
}

type shareController struct {
	shareService service.IShareService
	guestService service.IGuestSessionService
}

func NewShareController(
	shareService service.IShareService,
	guestService service.IGuestSessionService,
) IShareController {
	return &shareController{
		shareService: shareService,
		guestService: guestService,
	}
}

func (c *shareController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/share")
	// Creating a share works for users, guests and anonymous visitors alike;
	// identity only populates created_by. Reading is fully public.
	h.Post("", serverutils.ResolveIdentity(c.guestService), c.Create)
	h.Get(":id", c.Read)
}

func (c *shareController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateShareRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	var createdBy *string
	if identity := serverutils.IdentityFromCtx(ctx); identity.UserEmail != "" {
		email := identity.UserEmail
		createdBy = &email
	}

	res, err := c.shareService.Create(ctx.Context(), createdBy, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create share link", res))
}

func (c *shareController) Read(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("Invalid share id")
	}

	token := ctx.Query("t")
	if token == "" {
		return serverutils.NewValidationError("Missing share token")
	}

	res, err := c.shareService.Read(ctx.Context(), id, token)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get shared conversation", res))
}
