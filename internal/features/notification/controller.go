package notification

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"jzf-portal/internal/middleware"
)

type NotificationController struct {
	Service NotificationService
}

func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{Service: service}
}

func (c *NotificationController) List(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Não autenticado."})
	}

	limit := int64(50)
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	notifications, err := c.Service.ListForUser(ctx.Context(), actor.UserID, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao buscar notificações."})
	}
	return ctx.JSON(notifications)
}

func (c *NotificationController) UnreadCount(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Não autenticado."})
	}

	count, err := c.Service.UnreadCount(ctx.Context(), actor.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao contar notificações."})
	}
	return ctx.JSON(fiber.Map{"count": count})
}

func (c *NotificationController) MarkAsRead(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Não autenticado."})
	}

	if err := c.Service.MarkAsRead(ctx.Context(), actor.UserID, ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Notificação inválida."})
	}
	return ctx.JSON(fiber.Map{"success": true})
}

func (c *NotificationController) MarkAllAsRead(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Não autenticado."})
	}

	if err := c.Service.MarkAllAsRead(ctx.Context(), actor.UserID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao atualizar notificações."})
	}
	return ctx.JSON(fiber.Map{"success": true})
}
