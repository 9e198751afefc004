package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/taller-ops/internal/application/booking"
	"github.com/tu-usuario/taller-ops/internal/application/dto"
	"github.com/tu-usuario/taller-ops/internal/domain"
)

// BookingHandler maneja el alta y consulta de turnos y pedidos.
type BookingHandler struct {
	uc *booking.UseCase
}

// NewBookingHandler construye el handler.
func NewBookingHandler(uc *booking.UseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// CreateAppointment godoc
// @Summary      Crear un turno
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Success      201  {object}  entity.Appointment
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/appointments [post]
func (h *BookingHandler) CreateAppointment(c *fiber.Ctx) error {
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	a, err := h.uc.CreateAppointment(c.Context(), in.CustomerName, in.Vehicle, in.Date, in.TimeSlot, in.ServiceKey)
	if err != nil {
		return bookingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// GetAppointment godoc
// @Summary      Consultar un turno
// @Tags         appointments
// @Produce      json
// @Success      200  {object}  entity.Appointment
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [get]
func (h *BookingHandler) GetAppointment(c *fiber.Ctx) error {
	a, err := h.uc.GetAppointment(c.Context(), c.Params("id"))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(a)
}

// CreateOrder godoc
// @Summary      Crear un pedido mayorista
// @Tags         orders
// @Accept       json
// @Produce      json
// @Success      201  {object}  entity.Order
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *BookingHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.uc.CreateOrder(c.Context(), in.Supplier, in.Items)
	if err != nil {
		return bookingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GetOrder godoc
// @Summary      Consultar un pedido
// @Tags         orders
// @Produce      json
// @Success      200  {object}  entity.Order
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *BookingHandler) GetOrder(c *fiber.Ctx) error {
	o, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(o)
}

func bookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
