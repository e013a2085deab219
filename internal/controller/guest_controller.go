package controller

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGuestController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Verify(ctx *fiber.Ctx) error
	Migrate(ctx *fiber.Ctx) error
}

type guestController struct {
	guestService service.IGuestSessionService
}

func NewGuestController(guestService service.IGuestSessionService) IGuestController {
	return &guestController{
		guestService: guestService,
	}
}

func (c *guestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/guest")
	h.Post("create", c.Create)
	h.Post("verify", c.Verify)
	// Migration requires a logged-in user; the target identity comes from the
	// verified token, never from the request body.
	h.Post("migrate", serverutils.JwtMiddleware, c.Migrate)
}

func (c *guestController) Create(ctx *fiber.Ctx) error {
	res, err := c.guestService.Create(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create guest session", res))
}

func (c *guestController) Verify(ctx *fiber.Ctx) error {
	var req dto.VerifyGuestSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guestService.Verify(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session is valid", res))
}

func (c *guestController) Migrate(ctx *fiber.Ctx) error {
	userEmail := ctx.Locals(serverutils.LocalUserEmail).(string)

	var req dto.MigrateGuestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guestService.Migrate(ctx.Context(), req.GuestToken, userEmail)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success migrate guest history", res))
}
