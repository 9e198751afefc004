package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/taller-ops/internal/application/dto"
	"github.com/tu-usuario/taller-ops/internal/application/payments"
	"github.com/tu-usuario/taller-ops/internal/domain"
)

// PaymentHandler maneja las peticiones HTTP del ledger de pagos.
type PaymentHandler struct {
	ledger *payments.Ledger
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(ledger *payments.Ledger) *PaymentHandler {
	return &PaymentHandler{ledger: ledger}
}

// Register godoc
// @Summary      Registrar un pago pendiente
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPaymentRequest  true  "amount, method, linkedAppointmentId o linkedOrderId"
// @Success      201   {object}  entity.Payment
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.ledger.Register(c.Context(), payments.RegisterInput{
		AppointmentID:     in.AppointmentID,
		OrderID:           in.OrderID,
		Amount:            in.Amount,
		Method:            in.Method,
		ServiceKey:        in.ServiceKey,
		ExternalReference: in.ExternalReference,
	})
	if err != nil {
		return paymentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// Transition godoc
// @Summary      Aplicar una transición de estado (liquidación manual)
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del pago"
// @Param        body  body  dto.TransitionRequest  true  "status destino"
// @Success      200   {object}  entity.Payment
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/transition [post]
func (h *PaymentHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.ledger.Transition(c.Context(), c.Params("id"), in.Status, payments.Extra{})
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(p)
}

// List godoc
// @Summary      Listar pagos (opcionalmente por estado o medio)
// @Tags         payments
// @Produce      json
// @Param        status  query  string  false  "pending|approved|rejected|cancelled"
// @Param        method  query  string  false  "efectivo|transferencia|tarjeta|mercadopago|cuenta_dni|modo"
// @Success      200  {array}   entity.Payment
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	ctx := c.Context()
	status := c.Query("status")
	method := c.Query("method")

	var err error
	var out any
	switch {
	case status != "":
		out, err = h.ledger.ListByStatus(ctx, status)
	case method != "":
		out, err = h.ledger.ListByMethod(ctx, method)
	default:
		out, err = h.ledger.ListAll(ctx)
	}
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Resumen agregado de pagos
// @Tags         payments
// @Produce      json
// @Success      200  {object}  payments.Stats
// @Router       /api/payments/stats [get]
func (h *PaymentHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.ledger.AggregateStats(c.Context())
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(stats)
}

// paymentError mapea errores de dominio a códigos HTTP.
func paymentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
