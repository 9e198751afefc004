package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/taller-ops/internal/application/dto"
	"github.com/tu-usuario/taller-ops/internal/application/webhook"
	"github.com/tu-usuario/taller-ops/internal/domain"
	"github.com/tu-usuario/taller-ops/pkg/logger"
)

// WebhookHandler recibe los callbacks del proveedor de pagos.
type WebhookHandler struct {
	normalizer *webhook.Normalizer
	log        *logger.Logger
}

// NewWebhookHandler construye el handler.
func NewWebhookHandler(normalizer *webhook.Normalizer, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{normalizer: normalizer, log: log}
}

// Receive godoc
// @Summary      Callback del proveedor de pagos
// @Description  Acepta eventos payment/preference. Siempre responde 200 sobre
//               eventos bien formados (incluidas reentregas) para cortar el
//               ciclo de redelivery del proveedor.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/webhooks/payments [post]
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var ev webhook.Event
	if err := c.BodyParser(&ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	if err := h.normalizer.Handle(c.Context(), ev); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		// Pago inexistente o transición inválida: se loguea y se responde 200
		// para que el proveedor no reintente indefinidamente un evento que
		// nunca va a poder aplicarse.
		h.log.Warn().Err(err).Str("type", ev.Type).Msg("webhook no aplicado")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
