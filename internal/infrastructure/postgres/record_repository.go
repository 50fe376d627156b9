package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.RecordSource = (*RecordRepo)(nil)

// Las columnas se devuelven con los nombres que entiende el normalizador; los tipos
// (uuid, numeric, timestamptz) se resuelven allí.
const (
	productsQuery = `
		SELECT p.id, p.name, p.description, p.status, c.name AS category,
		       p.price, p.stock_quantity AS quantity, p.created_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.store_id = $1
		ORDER BY p.created_at DESC, p.id`

	ordersQuery = `
		SELECT o.id, o.order_number, o.status, o.total_amount, o.item_count,
		       o.payment_method, o.created_at
		FROM orders o
		WHERE o.store_id = $1
		ORDER BY o.created_at DESC, o.id`
)

// RecordRepo implementación del puerto RecordSource sobre PostgreSQL (usable con pool o tx).
type RecordRepo struct {
	q Querier
}

// NewRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecordRepository(q Querier) *RecordRepo {
	return &RecordRepo{q: q}
}

// FetchRecords lee todos los productos o pedidos de la tienda como mapas columna → valor.
func (r *RecordRepo) FetchRecords(ctx context.Context, storeID string, kind entity.RecordKind) ([]entity.RawRecord, error) {
	var query string
	switch kind {
	case entity.KindProduct:
		query = productsQuery
	case entity.KindOrder:
		query = ordersQuery
	default:
		return nil, domain.ErrUnknownKind
	}

	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("list %ss: esquema no migrado: %w", kind, err)
		}
		return nil, fmt.Errorf("list %ss: %w", kind, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("scan %ss: %w", kind, err)
	}

	out := make([]entity.RawRecord, len(maps))
	for i, m := range maps {
		out[i] = entity.RawRecord(m)
	}
	return out, nil
}
