package payments

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/taller-ops/internal/domain/entity"
)

// DimensionStats conteo y total aprobado de una dimensión.
type DimensionStats struct {
	Count          int             `json:"count"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
}

// Stats resumen agregado de pagos: conteos por estado y, por medio de pago y
// por servicio, conteo + monto aprobado acumulado.
type Stats struct {
	Total          int                       `json:"total"`
	ApprovedAmount decimal.Decimal           `json:"approvedAmount"`
	ByStatus       map[string]int            `json:"byStatus"`
	ByMethod       map[string]DimensionStats `json:"byMethod"`
	ByService      map[string]DimensionStats `json:"byService"`
}

// AggregateStats recorre el ledger completo y arma el resumen. Solo los pagos
// aprobados suman monto; todos cuentan en sus dimensiones.
func (l *Ledger) AggregateStats(ctx context.Context) (*Stats, error) {
	all, err := l.payments.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		ApprovedAmount: decimal.Zero,
		ByStatus:       make(map[string]int),
		ByMethod:       make(map[string]DimensionStats),
		ByService:      make(map[string]DimensionStats),
	}

	for _, p := range all {
		stats.Total++
		stats.ByStatus[p.Status]++

		approved := decimal.Zero
		if p.Status == entity.PaymentStatusApproved {
			approved = p.Amount
			stats.ApprovedAmount = stats.ApprovedAmount.Add(p.Amount)
		}

		accumulate(stats.ByMethod, p.Method, approved)
		if p.ServiceKey != "" {
			accumulate(stats.ByService, p.ServiceKey, approved)
		}
	}
	return stats, nil
}

func accumulate(m map[string]DimensionStats, key string, approved decimal.Decimal) {
	d, ok := m[key]
	if !ok {
		d = DimensionStats{ApprovedAmount: decimal.Zero}
	}
	d.Count++
	d.ApprovedAmount = d.ApprovedAmount.Add(approved)
	m[key] = d
}
