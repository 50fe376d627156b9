package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory categoría asignada cuando la API no envía ninguna.
const DefaultCategory = "uncategorized"

// RawRecord registro tal como llega de la fuente (JSON decodificado o fila de PostgreSQL).
// Puede traer campos faltantes o con tipos incorrectos; se normaliza antes de filtrar.
type RawRecord map[string]any

// CatalogRecord forma uniforme de un producto o un pedido dentro del motor de consultas.
// Price es el precio de venta del producto o el totalAmount del pedido.
// Quantity es el stock del producto o el número de artículos del pedido.
type CatalogRecord struct {
	ID            string
	Kind          RecordKind
	DisplayName   string
	Description   string
	Status        Status
	Category      string
	Price         decimal.Decimal
	Quantity      int64
	CreatedAt     time.Time
	PaymentMethod PaymentMethod // solo pedidos; vacío en productos
}

// StockValue precio × cantidad (valor de inventario de un producto).
func (r CatalogRecord) StockValue() decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(r.Quantity))
}
