package report

import (
	"github.com/gofiber/fiber/v2"

	"jzf-portal/internal/config"
	"jzf-portal/internal/middleware"
)

type ReportApi struct {
	controller *ReportController
	config     *config.Config
}

func NewReportApi(controller *ReportController, config *config.Config) *ReportApi {
	return &ReportApi{
		controller: controller,
		config:     config,
	}
}

func (h *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/api/reports", middleware.AuthMiddleware(h.config.SkipAuth), middleware.RequireOffice())
	group.Get("/client/:clientId/documents", h.controller.ClientDocuments)
}
