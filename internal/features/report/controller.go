package report

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"jzf-portal/internal/features/document"
	"jzf-portal/pkg/utils"
)

type ReportController struct {
	Service ReportService
}

func NewReportController(service ReportService) *ReportController {
	return &ReportController{Service: service}
}

func (c *ReportController) ClientDocuments(ctx *fiber.Ctx) error {
	clientID := ctx.Params("clientId")

	file, clientName, err := c.Service.ClientDocumentReport(ctx.Context(), clientID)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Cliente não encontrado."})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao gerar relatório."})
	}

	filename := fmt.Sprintf("documentos-%s.xlsx", utils.Slugify(clientName))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	buf, err := file.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao gerar relatório."})
	}
	return ctx.Send(buf.Bytes())
}
