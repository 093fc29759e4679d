package notification

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"jzf-portal/internal/config"
	"jzf-portal/internal/middleware"
	"jzf-portal/pkg/utils"
)

type NotificationApi struct {
	controller *NotificationController
	hub        *Hub
	config     *config.Config
}

func NewNotificationApi(controller *NotificationController, hub *Hub, config *config.Config) *NotificationApi {
	return &NotificationApi{
		controller: controller,
		hub:        hub,
		config:     config,
	}
}

func (h *NotificationApi) Setup(app *fiber.App) {
	group := app.Group("/api/notifications", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.List)
	group.Get("/unread-count", h.controller.UnreadCount)
	group.Put("/:id/read", h.controller.MarkAsRead)
	group.Put("/read-all", h.controller.MarkAllAsRead)

	// Live updates over websocket. The JWT is validated by the shared auth
	// middleware before the upgrade happens.
	ws := app.Group("/ws", middleware.AuthMiddleware(h.config.SkipAuth))
	ws.Use("/notifications", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	ws.Get("/notifications", websocket.New(func(conn *websocket.Conn) {
		claims, ok := conn.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			conn.Close()
			return
		}

		h.hub.Register(claims.UserID, conn)
		defer func() {
			h.hub.Unregister(claims.UserID, conn)
			conn.Close()
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}
