package extraction

import (
	"github.com/gofiber/fiber/v2"

	"jzf-portal/internal/config"
	"jzf-portal/internal/middleware"
)

type ExtractionApi struct {
	controller *ExtractionController
	config     *config.Config
}

func NewExtractionApi(controller *ExtractionController, config *config.Config) *ExtractionApi {
	return &ExtractionApi{
		controller: controller,
		config:     config,
	}
}

func (h *ExtractionApi) Setup(app *fiber.App) {
	group := app.Group("/api/extraction", middleware.AuthMiddleware(h.config.SkipAuth))
	group.Post("/analyze", h.controller.Analyze)
}
