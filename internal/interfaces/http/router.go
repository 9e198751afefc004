package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/taller-ops/internal/application/booking"
	"github.com/tu-usuario/taller-ops/internal/application/catalog"
	"github.com/tu-usuario/taller-ops/internal/application/payments"
	"github.com/tu-usuario/taller-ops/internal/application/webhook"
	"github.com/tu-usuario/taller-ops/internal/notify"
	"github.com/tu-usuario/taller-ops/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger     *payments.Ledger
	Normalizer *webhook.Normalizer
	Booking    *booking.UseCase
	Catalog    *catalog.UseCase
	Feed       *notify.Feed
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Pagos
	payGroup := api.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.Ledger)
	payGroup.Post("/", paymentHandler.Register)
	payGroup.Get("/", paymentHandler.List)
	payGroup.Get("/stats", paymentHandler.Stats)
	payGroup.Post("/:id/transition", paymentHandler.Transition)

	// Callback del proveedor (público: lo llama el proveedor, no la consola)
	webhookHandler := NewWebhookHandler(deps.Normalizer, deps.Log)
	api.Post("/webhooks/payments", webhookHandler.Receive)

	// Turnos y pedidos
	bookingHandler := NewBookingHandler(deps.Booking)
	appts := api.Group("/appointments")
	appts.Post("/", bookingHandler.CreateAppointment)
	appts.Get("/:id", bookingHandler.GetAppointment)
	orders := api.Group("/orders")
	orders.Post("/", bookingHandler.CreateOrder)
	orders.Get("/:id", bookingHandler.GetOrder)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.Catalog)
	products := api.Group("/products")
	products.Get("/", catalogHandler.List)
	products.Get("/:id", catalogHandler.Get)

	// Notificaciones recientes
	notificationHandler := NewNotificationHandler(deps.Feed)
	api.Get("/notifications/recent", notificationHandler.Recent)
}
