// Package booking contiene el CRUD liviano de turnos y pedidos: el pegamento
// que crea los registros a los que luego se vinculan los pagos.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/taller-ops/internal/domain"
	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/domain/repository"
)

// UseCase alta y consulta de turnos y pedidos.
type UseCase struct {
	appts  repository.AppointmentRepository
	orders repository.OrderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(appts repository.AppointmentRepository, orders repository.OrderRepository) *UseCase {
	return &UseCase{appts: appts, orders: orders}
}

// CreateAppointment registra un turno en estado pending.
func (uc *UseCase) CreateAppointment(ctx context.Context, customerName, vehicle, date, timeSlot, serviceKey string) (*entity.Appointment, error) {
	if customerName == "" || date == "" || timeSlot == "" || serviceKey == "" {
		return nil, fmt.Errorf("turno incompleto: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	a := &entity.Appointment{
		ID:           uuid.New().String(),
		CustomerName: customerName,
		Vehicle:      vehicle,
		Date:         date,
		TimeSlot:     timeSlot,
		ServiceKey:   serviceKey,
		Status:       entity.AppointmentPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.appts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetAppointment obtiene un turno; domain.ErrNotFound si no existe.
func (uc *UseCase) GetAppointment(ctx context.Context, id string) (*entity.Appointment, error) {
	a, err := uc.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// CreateOrder registra un pedido mayorista.
func (uc *UseCase) CreateOrder(ctx context.Context, supplier string, items []entity.OrderItem) (*entity.Order, error) {
	if supplier == "" || len(items) == 0 {
		return nil, fmt.Errorf("pedido incompleto: %w", domain.ErrInvalidInput)
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, fmt.Errorf("renglón de pedido inválido: %w", domain.ErrInvalidInput)
		}
	}
	now := time.Now()
	o := &entity.Order{
		ID:        uuid.New().String(),
		Supplier:  supplier,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetOrder obtiene un pedido; domain.ErrNotFound si no existe.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}
