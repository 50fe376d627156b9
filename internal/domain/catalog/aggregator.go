package catalog

import (
	"fmt"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Stats estadísticas derivadas para las tarjetas de resumen.
type Stats struct {
	Kind entity.RecordKind

	// CountsByStatus incluye todos los estados del dominio del tipo (0 si no hay registros);
	// StatusUnknown aparece solo si algún registro lo tiene.
	CountsByStatus map[entity.Status]int

	// CountsByPaymentMethod solo para pedidos; mismo criterio que CountsByStatus.
	CountsByPaymentMethod map[entity.PaymentMethod]int

	TotalRevenue   decimal.Decimal // Σ price (totalAmount en pedidos)
	InventoryValue decimal.Decimal // Σ price × quantity
	TotalItems     int64           // Σ quantity
	TotalCount     int
}

// Aggregate calcula las estadísticas en una sola pasada. Es pura e idempotente.
// Valores negativos (registros que no pasaron por Normalize) cuentan como 0.
// Un kind desconocido es un error de programación y provoca panic.
func Aggregate(kind entity.RecordKind, records []entity.CatalogRecord) Stats {
	if !kind.Valid() {
		panic(fmt.Sprintf("catalog: Aggregate con kind desconocido %q", kind))
	}

	stats := Stats{
		Kind:           kind,
		CountsByStatus: make(map[entity.Status]int),
		TotalRevenue:   decimal.Zero,
		InventoryValue: decimal.Zero,
		TotalCount:     len(records),
	}
	for _, s := range kind.Statuses() {
		stats.CountsByStatus[s] = 0
	}
	if kind == entity.KindOrder {
		stats.CountsByPaymentMethod = make(map[entity.PaymentMethod]int)
		for _, pm := range entity.PaymentMethods() {
			stats.CountsByPaymentMethod[pm] = 0
		}
	}

	for _, r := range records {
		status := r.Status
		if _, known := stats.CountsByStatus[status]; !known || status == "" {
			status = entity.StatusUnknown
		}
		stats.CountsByStatus[status]++

		if stats.CountsByPaymentMethod != nil {
			pm := r.PaymentMethod
			if _, known := stats.CountsByPaymentMethod[pm]; !known {
				pm = entity.PaymentUnknown
			}
			stats.CountsByPaymentMethod[pm]++
		}

		price := r.Price
		if price.IsNegative() {
			price = decimal.Zero
		}
		qty := r.Quantity
		if qty < 0 {
			qty = 0
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(price)
		stats.InventoryValue = stats.InventoryValue.Add(price.Mul(decimal.NewFromInt(qty)))
		stats.TotalItems += qty
	}
	return stats
}
