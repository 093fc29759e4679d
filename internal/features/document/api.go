package document

import (
	"jzf-portal/internal/config"
	"jzf-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DocumentApi struct {
	controller *DocumentController
	config     *config.Config
}

func NewDocumentApi(controller *DocumentController, config *config.Config) *DocumentApi {
	return &DocumentApi{
		controller: controller,
		config:     config,
	}
}

func (h *DocumentApi) Setup(app *fiber.App) {
	group := app.Group("/api/documents", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/updates", h.controller.ListUpdates)
	group.Get("/client/:clientId", h.controller.ListByClient)
	group.Get("/:id", h.controller.GetByID)

	group.Post("/request", h.controller.CreateRequest)
	group.Post("/from-template", h.controller.CreateFromTemplate)
	group.Put("/:id/from-template", h.controller.SubmitNextStep)
	group.Put("/:id/sign", h.controller.Sign)

	// Office-only surface
	group.Post("/send-from-admin", middleware.RequireOffice(), h.controller.SendFromOffice)
	group.Post("/quick-send", middleware.RequireOffice(), h.controller.QuickSend)
	group.Put("/:id/approve-step", middleware.RequireOffice(), h.controller.ApproveStep)
	group.Put("/:id/status", middleware.RequireOffice(), h.controller.SetStatus)
}
