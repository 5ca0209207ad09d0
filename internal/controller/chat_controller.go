package controller

import (
	"resumegpt-be/internal/dto"
	"resumegpt-be/internal/pkg/serverutils"
	"resumegpt-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	ClearMemory(ctx *fiber.Ctx) error
	SwitchMemory(ctx *fiber.Ctx) error
	MemorySummary(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("/ask", c.Ask)
	h.Post("/clear-memory", c.ClearMemory)
	h.Post("/switch-memory", c.SwitchMemory)
	h.Get("/memory-summary", c.MemorySummary)
	h.Delete("/session/:id", c.DeleteSession)
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Question answered", res))
}

func (c *chatController) ClearMemory(ctx *fiber.Ctx) error {
	var req dto.ClearMemoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.ClearMemory(ctx.Context(), req.SessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Memory cleared", nil))
}

func (c *chatController) SwitchMemory(ctx *fiber.Ctx) error {
	var req dto.SwitchMemoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.SwitchMemory(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Memory policy switched", nil))
}

func (c *chatController) MemorySummary(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("session_id")
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	res, err := c.service.MemorySummary(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Memory summary", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	if err := c.service.DeleteSession(ctx.Context(), sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Session deleted", nil))
}
