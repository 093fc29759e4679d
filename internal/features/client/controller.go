package client

import (
	"github.com/gofiber/fiber/v2"
)

type ClientController struct {
	Repo ClientRepository
}

func NewClientController(repo ClientRepository) *ClientController {
	return &ClientController{Repo: repo}
}

// List godoc
// @Summary List client companies
// @Tags clients
// @Produce json
// @Success 200 {array} Client
// @Router /api/clients [get]
func (c *ClientController) List(ctx *fiber.Ctx) error {
	clients, err := c.Repo.List(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(clients)
}

// Get godoc
// @Summary Get a client company
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} Client
// @Failure 404 {object} map[string]string "Client not found"
// @Router /api/clients/{id} [get]
func (c *ClientController) Get(ctx *fiber.Ctx) error {
	found, err := c.Repo.GetByID(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if found == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cliente não encontrado."})
	}
	return ctx.JSON(found)
}

// Create godoc
// @Summary Create a client company
// @Tags clients
// @Accept json
// @Produce json
// @Param client body Client true "Client"
// @Success 201 {object} Client
// @Router /api/clients [post]
func (c *ClientController) Create(ctx *fiber.Ctx) error {
	var input Client
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if input.Status == "" {
		input.Status = ClientAtivo
	}

	if err := c.Repo.Create(ctx.UserContext(), &input); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(input)
}

// Update godoc
// @Summary Update a client company
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body Client true "Client"
// @Success 200 {object} map[string]string
// @Router /api/clients/{id} [put]
func (c *ClientController) Update(ctx *fiber.Ctx) error {
	var input Client
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Repo.Update(ctx.UserContext(), ctx.Params("id"), &input); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Cliente atualizado com sucesso."})
}

// Delete godoc
// @Summary Delete a client company
// @Tags clients
// @Param id path string true "Client ID"
// @Success 204 {object} nil "No Content"
// @Router /api/clients/{id} [delete]
func (c *ClientController) Delete(ctx *fiber.Ctx) error {
	if err := c.Repo.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
