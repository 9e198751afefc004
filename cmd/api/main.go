package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/taller-ops/internal/application/appointments"
	"github.com/tu-usuario/taller-ops/internal/application/booking"
	"github.com/tu-usuario/taller-ops/internal/application/catalog"
	"github.com/tu-usuario/taller-ops/internal/application/inventory"
	"github.com/tu-usuario/taller-ops/internal/application/payments"
	"github.com/tu-usuario/taller-ops/internal/application/webhook"
	"github.com/tu-usuario/taller-ops/internal/infrastructure/ledger"
	httpRouter "github.com/tu-usuario/taller-ops/internal/interfaces/http"
	"github.com/tu-usuario/taller-ops/internal/notify"
	"github.com/tu-usuario/taller-ops/internal/store"
	"github.com/tu-usuario/taller-ops/internal/store/memory"
	storepg "github.com/tu-usuario/taller-ops/internal/store/postgres"
	"github.com/tu-usuario/taller-ops/pkg/config"
	"github.com/tu-usuario/taller-ops/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Ledger Store según driver configurado
	var st store.Store
	switch cfg.Store.Driver {
	case "memory":
		st = memory.New()
	default:
		pool, err := storepg.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pgStore := storepg.New(pool)
		if err := pgStore.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("migración del store")
		}
		st = pgStore
	}

	paymentRepo := ledger.NewPaymentRepository(st)
	productRepo := ledger.NewProductRepository(st)
	movementRepo := ledger.NewMovementRepository(st)
	appointmentRepo := ledger.NewAppointmentRepository(st)
	orderRepo := ledger.NewOrderRepository(st)
	webhookEventRepo := ledger.NewWebhookEventRepository(st)

	// Cola de notificaciones: push nativo + feed de toasts para la consola
	pusher := notify.NewHTTPPushSender(cfg.Notify.PushURL, cfg.Notify.PushToken)
	feed := notify.NewFeed(50)
	queue := notify.NewQueue(pusher, feed, cfg.Notify.Pacing(), log)

	bridge := appointments.NewStatusBridge(appointmentRepo, log)
	reconciler := inventory.NewReconciler(productRepo, movementRepo, nil, log)
	paymentLedger := payments.NewLedger(
		paymentRepo, appointmentRepo, orderRepo,
		bridge, reconciler, queue, log,
	)
	normalizer := webhook.NewNormalizer(paymentLedger, webhookEventRepo, log)
	bookingUC := booking.NewUseCase(appointmentRepo, orderRepo)
	catalogUC := catalog.NewUseCase(productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:     paymentLedger,
		Normalizer: normalizer,
		Booking:    bookingUC,
		Catalog:    catalogUC,
		Feed:       feed,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Esperar el drenaje de notificaciones en curso
	queue.Close()

	log.Info().Msg("aplicación detenida")
}
