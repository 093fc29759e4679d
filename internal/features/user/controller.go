package user

import (
	"time"

	"jzf-portal/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	Repo UserRepository
}

func NewUserController(repo UserRepository) *UserController {
	return &UserController{Repo: repo}
}

// List godoc
// @Summary List portal users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /api/users [get]
func (c *UserController) List(ctx *fiber.Ctx) error {
	users, err := c.Repo.List(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(users)
}

// Create godoc
// @Summary Create a portal user
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.User true "User"
// @Success 201 {object} models.User
// @Router /api/users [post]
func (c *UserController) Create(ctx *fiber.Ctx) error {
	var input struct {
		models.User
		Password string `json:"password"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	existing, err := c.Repo.FindByUsername(ctx.UserContext(), input.Username)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if existing != nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Nome de usuário já existe."})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	user := input.User
	user.Password = string(hashed)
	user.CreatedAt = time.Now()

	if err := c.Repo.Create(ctx.UserContext(), &user); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(user)
}

// Update godoc
// @Summary Update a portal user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body models.User true "User"
// @Success 200 {object} map[string]string
// @Router /api/users/{id} [put]
func (c *UserController) Update(ctx *fiber.Ctx) error {
	var user models.User
	if err := ctx.BodyParser(&user); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Repo.Update(ctx.UserContext(), ctx.Params("id"), &user); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Usuário atualizado com sucesso."})
}
