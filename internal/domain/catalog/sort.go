package catalog

import (
	"slices"
	"strings"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// SortField campo por el que se ordena el resultado.
type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "createdAt"
	SortByPrice     SortField = "price"
	SortByQuantity  SortField = "quantity"
	SortByStatus    SortField = "status"
)

// SortDirection sentido del orden.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec orden solicitado. El valor cero conserva el orden de entrada.
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort más recientes primero, como las tablas del panel.
func DefaultSort() SortSpec {
	return SortSpec{Field: SortByCreatedAt, Direction: SortDesc}
}

var sortFieldAliases = map[string]SortField{
	"name":         SortByName,
	"displayname":  SortByName,
	"display_name": SortByName,
	"title":        SortByName,
	"createdat":    SortByCreatedAt,
	"created_at":   SortByCreatedAt,
	"date":         SortByCreatedAt,
	"price":        SortByPrice,
	"total":        SortByPrice,
	"totalamount":  SortByPrice,
	"total_amount": SortByPrice,
	"quantity":     SortByQuantity,
	"stock":        SortByQuantity,
	"stocklevel":   SortByQuantity,
	"status":       SortByStatus,
}

// ParseSortField acepta los nombres de campo del panel y sus variantes snake_case.
func ParseSortField(s string) (SortField, bool) {
	f, ok := sortFieldAliases[strings.ToLower(strings.TrimSpace(s))]
	return f, ok
}

// ParseSortDirection acepta "asc" o "desc" (sin distinguir mayúsculas).
func ParseSortDirection(s string) (SortDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return SortAsc, true
	case "desc":
		return SortDesc, true
	}
	return "", false
}

// sortKeyed registro con su clave de nombre precalculada (fold es costoso para hacerlo en cada comparación).
type sortKeyed struct {
	rec  entity.CatalogRecord
	name string
}

// sortStable ordena recs en su lugar. El orden es estable: registros con la misma clave
// conservan su posición relativa de entrada, también en sentido descendente.
func sortStable(recs []entity.CatalogRecord, spec SortSpec) {
	cmp := spec.comparator()
	if cmp == nil || len(recs) < 2 {
		return
	}
	keyed := make([]sortKeyed, len(recs))
	for i, r := range recs {
		keyed[i] = sortKeyed{rec: r}
		if spec.Field == SortByName {
			keyed[i].name = fold(r.DisplayName)
		}
	}
	if spec.Direction == SortDesc {
		asc := cmp
		cmp = func(a, b sortKeyed) int { return asc(b, a) }
	}
	slices.SortStableFunc(keyed, cmp)
	for i := range keyed {
		recs[i] = keyed[i].rec
	}
}

// comparator devuelve un orden total ascendente sobre el campo, o nil si el campo no ordena.
func (s SortSpec) comparator() func(a, b sortKeyed) int {
	switch s.Field {
	case SortByName:
		return func(a, b sortKeyed) int { return strings.Compare(a.name, b.name) }
	case SortByCreatedAt:
		return func(a, b sortKeyed) int { return a.rec.CreatedAt.Compare(b.rec.CreatedAt) }
	case SortByPrice:
		return func(a, b sortKeyed) int { return a.rec.Price.Cmp(b.rec.Price) }
	case SortByQuantity:
		return func(a, b sortKeyed) int { return compareInt(a.rec.Quantity, b.rec.Quantity) }
	case SortByStatus:
		return func(a, b sortKeyed) int { return compareInt(statusRank(a.rec), statusRank(b.rec)) }
	}
	return nil
}

// statusRank posición del estado en el dominio de su tipo; unknown va al final.
func statusRank(r entity.CatalogRecord) int64 {
	domain := r.Kind.Statuses()
	if i := slices.Index(domain, r.Status); i >= 0 {
		return int64(i)
	}
	return int64(len(domain))
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
