package controller

import (
	"resumegpt-be/internal/dto"
	"resumegpt-be/internal/pkg/serverutils"
	"resumegpt-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	CoverLetter(ctx *fiber.Ctx) error
	Interview(ctx *fiber.Ctx) error
}

type generationController struct {
	service service.IGenerationService
}

func NewGenerationController(service service.IGenerationService) IGenerationController {
	return &generationController{service: service}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generate/v1")
	h.Post("/cover-letter", c.CoverLetter)
	h.Post("/interview", c.Interview)
}

func (c *generationController) CoverLetter(ctx *fiber.Ctx) error {
	var req dto.CoverLetterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CoverLetter(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Cover letter generated", res))
}

func (c *generationController) Interview(ctx *fiber.Ctx) error {
	var req dto.InterviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.InterviewQuestions(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Interview prep generated", res))
}
