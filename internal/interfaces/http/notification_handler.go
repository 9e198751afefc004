package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/taller-ops/internal/notify"
)

// NotificationHandler expone el feed de toasts recientes para la consola.
type NotificationHandler struct {
	feed *notify.Feed
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(feed *notify.Feed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// Recent godoc
// @Summary      Toasts recientes (más nuevo primero)
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  notify.FeedEntry
// @Router       /api/notifications/recent [get]
func (h *NotificationHandler) Recent(c *fiber.Ctx) error {
	return c.JSON(h.feed.Recent())
}
