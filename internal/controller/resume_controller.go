package controller

import (
	"io"
	"path/filepath"
	"strings"

	"resumegpt-be/internal/pkg/serverutils"
	"resumegpt-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IResumeController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type resumeController struct {
	service service.IResumeService
}

func NewResumeController(service service.IResumeService) IResumeController {
	return &resumeController{service: service}
}

func (c *resumeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/resume/v1")
	h.Post("/upload", c.Upload)
}

func (c *resumeController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".txt" && ext != ".md" {
		return fiber.NewError(fiber.StatusBadRequest, "only .txt and .md files are supported")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cannot open uploaded file")
	}
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cannot read uploaded file")
	}

	content := strings.TrimSpace(string(buf))
	if content == "" {
		return fiber.NewError(fiber.StatusBadRequest, "uploaded file is empty")
	}

	res, err := c.service.Upload(ctx.Context(), fileHeader.Filename, content)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Resume uploaded", res))
}
