package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// CatalogQueryRequest parámetros para GET /api/stores/:storeID/catalog/{products|orders}.
// Los filtros de selección múltiple van separados por coma (status=active,draft).
type CatalogQueryRequest struct {
	Search        string `query:"search" validate:"max=200"`
	Status        string `query:"status"`         // lista: active,draft | pending,shipped…
	Category      string `query:"category"`       // lista de categorías
	Price         string `query:"price"`          // lista de rangos: free,0-25000,100000+
	PaymentMethod string `query:"payment_method"` // lista, solo pedidos
	CreatedFrom   string `query:"created_from" validate:"omitempty,datetime=2006-01-02"`
	CreatedTo     string `query:"created_to" validate:"omitempty,datetime=2006-01-02"`
	Sort          string `query:"sort" validate:"omitempty,oneof=name createdAt created_at price quantity status"`
	Dir           string `query:"dir" validate:"omitempty,oneof=asc desc ASC DESC"`
	Stats         string `query:"stats" validate:"omitempty,oneof=full filtered"`
	PageRequest
}

// ── Respuesta ─────────────────────────────────────────────────────────────────

// CatalogRecordDTO registro normalizado listo para la tabla del panel.
type CatalogRecordDTO struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	DisplayName   string          `json:"display_name"`
	Description   string          `json:"description,omitempty"`
	Status        string          `json:"status"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"` // total del pedido en orders
	PriceBucket   string          `json:"price_bucket"`
	Quantity      int64           `json:"quantity"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"` // nil si el origen no trae fecha
	PaymentMethod string          `json:"payment_method,omitempty"`
}

// CatalogStatsDTO tarjetas de resumen.
type CatalogStatsDTO struct {
	Scope                 string          `json:"scope"` // full | filtered
	CountsByStatus        map[string]int  `json:"counts_by_status"`
	CountsByPaymentMethod map[string]int  `json:"counts_by_payment_method,omitempty"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	InventoryValue        decimal.Decimal `json:"inventory_value"`
	TotalItems            int64           `json:"total_items"`
	TotalCount            int             `json:"total_count"`
}

// NormalizationDTO resumen de anomalías encontradas al normalizar el lote.
type NormalizationDTO struct {
	Received int            `json:"received"`
	Kept     int            `json:"kept"`
	Issues   map[string]int `json:"issues,omitempty"`
}

// CatalogQueryResponse respuesta de una consulta al catálogo.
type CatalogQueryResponse struct {
	StoreID       string             `json:"store_id"`
	Kind          string             `json:"kind"`
	Records       []CatalogRecordDTO `json:"records"`
	Page          PageResponse       `json:"page"`
	Stats         CatalogStatsDTO    `json:"stats"`
	Normalization NormalizationDTO   `json:"normalization"`
	Stale         bool               `json:"stale,omitempty"` // otra carga más reciente ya había sido aplicada
}
