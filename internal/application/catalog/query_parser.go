package catalog

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// BuildQuery traduce los parámetros HTTP/CLI a la consulta del motor.
// Valores de estado o medio de pago que no pertenecen al dominio se conservan como "unknown",
// así solo coinciden con registros desconocidos. El filtro de medio de pago solo aplica a pedidos.
func BuildQuery(kind entity.RecordKind, req dto.CatalogQueryRequest) (catalog.Query, error) {
	var q catalog.Query

	q.Criteria.SearchText = strings.TrimSpace(req.Search)
	for _, s := range splitList(req.Status) {
		q.Criteria.StatusIn = appendUnique(q.Criteria.StatusIn, entity.ParseStatus(kind, s))
	}
	q.Criteria.CategoryIn = splitList(req.Category)
	for _, s := range splitList(req.Price) {
		q.Criteria.PriceRanges = appendUnique(q.Criteria.PriceRanges, catalog.ParsePriceBucket(s))
	}
	if kind == entity.KindOrder {
		for _, s := range splitList(req.PaymentMethod) {
			q.Criteria.PaymentMethodIn = appendUnique(q.Criteria.PaymentMethodIn, entity.ParsePaymentMethod(s))
		}
	}

	var err error
	if q.Criteria.CreatedFrom, err = parseDay(req.CreatedFrom, "created_from"); err != nil {
		return catalog.Query{}, err
	}
	if q.Criteria.CreatedTo, err = parseDay(req.CreatedTo, "created_to"); err != nil {
		return catalog.Query{}, err
	}
	if !q.Criteria.CreatedTo.IsZero() {
		// hasta el final del día indicado
		q.Criteria.CreatedTo = q.Criteria.CreatedTo.Add(24*time.Hour - time.Nanosecond)
	}
	if !q.Criteria.CreatedFrom.IsZero() && !q.Criteria.CreatedTo.IsZero() && q.Criteria.CreatedFrom.After(q.Criteria.CreatedTo) {
		return catalog.Query{}, fmt.Errorf("%w: created_from posterior a created_to", domain.ErrInvalidInput)
	}

	if q.Sort, err = parseSort(req.Sort, req.Dir); err != nil {
		return catalog.Query{}, err
	}

	if req.Limit < 0 || req.Offset < 0 {
		return catalog.Query{}, fmt.Errorf("%w: limit y offset no pueden ser negativos", domain.ErrInvalidInput)
	}
	page := req.PageRequest
	page.DefaultPage()
	q.Page = catalog.Page{Offset: page.Offset, Limit: page.Limit}

	switch strings.ToLower(strings.TrimSpace(req.Stats)) {
	case "", string(catalog.ScopeFull):
		q.StatsScope = catalog.ScopeFull
	case string(catalog.ScopeFiltered):
		q.StatsScope = catalog.ScopeFiltered
	default:
		return catalog.Query{}, fmt.Errorf("%w: stats debe ser full o filtered", domain.ErrInvalidInput)
	}
	return q, nil
}

func parseSort(field, dir string) (catalog.SortSpec, error) {
	if strings.TrimSpace(field) == "" && strings.TrimSpace(dir) == "" {
		return catalog.DefaultSort(), nil
	}
	spec := catalog.DefaultSort()
	if strings.TrimSpace(field) != "" {
		f, ok := catalog.ParseSortField(field)
		if !ok {
			return catalog.SortSpec{}, fmt.Errorf("%w: sort %q no soportado", domain.ErrInvalidInput, field)
		}
		spec = catalog.SortSpec{Field: f, Direction: catalog.SortAsc}
	}
	if strings.TrimSpace(dir) != "" {
		d, ok := catalog.ParseSortDirection(dir)
		if !ok {
			return catalog.SortSpec{}, fmt.Errorf("%w: dir debe ser asc o desc", domain.ErrInvalidInput)
		}
		spec.Direction = d
	}
	return spec, nil
}

func parseDay(s, name string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, name)
	}
	return t, nil
}

// splitList separa una lista por comas descartando elementos vacíos.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func appendUnique[T comparable](list []T, v T) []T {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

// DescribeFilters lista los filtros aplicados en forma legible (cabecera de reportes, salida CLI).
func DescribeFilters(kind entity.RecordKind, q catalog.Query) []AppliedFilter {
	var out []AppliedFilter
	add := func(label string, values []string) {
		if len(values) > 0 {
			out = append(out, AppliedFilter{Label: label, Value: strings.Join(values, ", ")})
		}
	}
	c := q.Criteria
	if c.SearchText != "" {
		out = append(out, AppliedFilter{Label: "Búsqueda", Value: c.SearchText})
	}
	add("Estado", toStrings(c.StatusIn))
	add("Categoría", c.CategoryIn)
	add("Precio", toStrings(c.PriceRanges))
	if kind == entity.KindOrder {
		add("Medio de pago", toStrings(c.PaymentMethodIn))
	}
	if !c.CreatedFrom.IsZero() {
		out = append(out, AppliedFilter{Label: "Desde", Value: c.CreatedFrom.Format(dateLayout)})
	}
	if !c.CreatedTo.IsZero() {
		out = append(out, AppliedFilter{Label: "Hasta", Value: c.CreatedTo.Format(dateLayout)})
	}
	if q.Sort.Field != "" {
		out = append(out, AppliedFilter{Label: "Orden", Value: string(q.Sort.Field) + " " + string(q.Sort.Direction)})
	}
	return out
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
