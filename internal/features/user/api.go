package user

import (
	"jzf-portal/internal/config"
	"jzf-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
}

func NewUserApi(controller *UserController, config *config.Config) *UserApi {
	return &UserApi{
		controller: controller,
		config:     config,
	}
}

func (h *UserApi) Setup(app *fiber.App) {
	group := app.Group("/api/users", middleware.AuthMiddleware(h.config.SkipAuth), middleware.RequireOffice())

	group.Get("/", h.controller.List)
	group.Post("/", h.controller.Create)
	group.Put("/:id", h.controller.Update)
}
