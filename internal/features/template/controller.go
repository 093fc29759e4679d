package template

import (
	"github.com/gofiber/fiber/v2"
)

type TemplateController struct {
	Registry Registry
}

func NewTemplateController(registry Registry) *TemplateController {
	return &TemplateController{Registry: registry}
}

// List godoc
// @Summary List document templates
// @Tags templates
// @Produce json
// @Success 200 {array} Template
// @Router /api/templates [get]
func (c *TemplateController) List(ctx *fiber.Ctx) error {
	return ctx.JSON(c.Registry.List())
}

// Get godoc
// @Summary Get a document template by ID
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} Template
// @Failure 404 {object} map[string]string "Template not found"
// @Router /api/templates/{id} [get]
func (c *TemplateController) Get(ctx *fiber.Ctx) error {
	tpl := c.Registry.Get(ctx.Params("id"))
	if tpl == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Modelo não encontrado."})
	}
	return ctx.JSON(tpl)
}
