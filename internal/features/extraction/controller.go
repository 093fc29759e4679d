package extraction

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jzf-portal/internal/middleware"
)

type ExtractionController struct {
	Service Service
}

func NewExtractionController(service Service) *ExtractionController {
	return &ExtractionController{Service: service}
}

func (c *ExtractionController) Analyze(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Não autenticado."})
	}

	var input AnalyzeInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Corpo da requisição inválido."})
	}
	if input.FileName == "" || input.FileContent == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Arquivo é obrigatório para análise."})
	}

	fields, err := c.Service.Analyze(ctx.Context(), actor.UserID, input)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "Serviço de extração indisponível."})
		}
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Falha ao analisar o documento."})
	}

	return ctx.JSON(fiber.Map{"fields": fields})
}
