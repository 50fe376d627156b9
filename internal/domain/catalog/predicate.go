package catalog

import (
	"strings"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// FilterCriteria criterios de filtrado activos. Todos son opcionales:
// un campo vacío (o un conjunto vacío) no restringe nada.
type FilterCriteria struct {
	SearchText      string
	StatusIn        []entity.Status
	CategoryIn      []string
	PriceRanges     []PriceBucket
	PaymentMethodIn []entity.PaymentMethod
	CreatedFrom     time.Time // cero = sin límite inferior
	CreatedTo       time.Time // cero = sin límite superior; inclusivo
}

// IsEmpty informa si los criterios no restringen ningún registro.
func (c FilterCriteria) IsEmpty() bool {
	return strings.TrimSpace(c.SearchText) == "" &&
		len(c.StatusIn) == 0 &&
		len(c.CategoryIn) == 0 &&
		len(c.PriceRanges) == 0 &&
		len(c.PaymentMethodIn) == 0 &&
		c.CreatedFrom.IsZero() &&
		c.CreatedTo.IsZero()
}

// Predicate función booleana pura sobre un registro.
type Predicate func(entity.CatalogRecord) bool

// MatchAll predicado neutro.
func MatchAll(entity.CatalogRecord) bool { return true }

// And combina predicados con AND lógico; sin argumentos equivale a MatchAll.
func And(preds ...Predicate) Predicate {
	switch len(preds) {
	case 0:
		return MatchAll
	case 1:
		return preds[0]
	}
	return func(r entity.CatalogRecord) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// BuildPredicate convierte los criterios en un único predicado:
// texto AND estado AND categoría AND (OR de rangos de precio) AND medio de pago AND fechas.
func BuildPredicate(c FilterCriteria) Predicate {
	var clauses []Predicate

	if needle := fold(c.SearchText); needle != "" {
		clauses = append(clauses, func(r entity.CatalogRecord) bool {
			return strings.Contains(fold(r.DisplayName), needle) ||
				strings.Contains(fold(r.Description), needle) ||
				strings.Contains(fold(r.Category), needle)
		})
	}

	if len(c.StatusIn) > 0 {
		set := make(map[entity.Status]struct{}, len(c.StatusIn))
		for _, s := range c.StatusIn {
			set[s] = struct{}{}
		}
		clauses = append(clauses, func(r entity.CatalogRecord) bool {
			_, ok := set[r.Status]
			return ok
		})
	}

	if len(c.CategoryIn) > 0 {
		set := make(map[string]struct{}, len(c.CategoryIn))
		for _, cat := range c.CategoryIn {
			set[fold(cat)] = struct{}{}
		}
		clauses = append(clauses, func(r entity.CatalogRecord) bool {
			_, ok := set[fold(r.Category)]
			return ok
		})
	}

	if len(c.PriceRanges) > 0 {
		buckets := append([]PriceBucket(nil), c.PriceRanges...)
		clauses = append(clauses, func(r entity.CatalogRecord) bool {
			for _, b := range buckets {
				if b.Matches(r.Price) {
					return true
				}
			}
			return false
		})
	}

	if len(c.PaymentMethodIn) > 0 {
		set := make(map[entity.PaymentMethod]struct{}, len(c.PaymentMethodIn))
		for _, pm := range c.PaymentMethodIn {
			set[pm] = struct{}{}
		}
		clauses = append(clauses, func(r entity.CatalogRecord) bool {
			_, ok := set[r.PaymentMethod]
			return ok
		})
	}

	if !c.CreatedFrom.IsZero() || !c.CreatedTo.IsZero() {
		from, to := c.CreatedFrom, c.CreatedTo
		clauses = append(clauses, func(r entity.CatalogRecord) bool {
			if r.CreatedAt.IsZero() {
				return false
			}
			if !from.IsZero() && r.CreatedAt.Before(from) {
				return false
			}
			if !to.IsZero() && r.CreatedAt.After(to) {
				return false
			}
			return true
		})
	}

	return And(clauses...)
}
