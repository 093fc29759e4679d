package client

import (
	"jzf-portal/internal/config"
	"jzf-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ClientApi struct {
	controller *ClientController
	config     *config.Config
}

func NewClientApi(controller *ClientController, config *config.Config) *ClientApi {
	return &ClientApi{
		controller: controller,
		config:     config,
	}
}

func (h *ClientApi) Setup(app *fiber.App) {
	group := app.Group("/api/clients", middleware.AuthMiddleware(h.config.SkipAuth), middleware.RequireOffice())

	group.Get("/", h.controller.List)
	group.Get("/:id", h.controller.Get)
	group.Post("/", h.controller.Create)
	group.Put("/:id", h.controller.Update)
	group.Delete("/:id", h.controller.Delete)
}
