package catalog

import "github.com/jhoicas/Catalogo-api/internal/domain/entity"

// Page ventana de paginación [Offset, Offset+Limit). Limit <= 0 significa sin límite.
type Page struct {
	Offset int
	Limit  int
}

// Execute aplica el pipeline completo: filtro → orden estable → página.
// Devuelve siempre un slice nuevo (nunca nil); el slice de entrada no se modifica.
func Execute(records []entity.CatalogRecord, criteria FilterCriteria, sort SortSpec, page Page) []entity.CatalogRecord {
	return Paginate(filterAndSort(records, criteria, sort), page)
}

// filterAndSort filtra conservando el orden de entrada y luego ordena de forma estable.
func filterAndSort(records []entity.CatalogRecord, criteria FilterCriteria, sort SortSpec) []entity.CatalogRecord {
	pred := BuildPredicate(criteria)
	out := make([]entity.CatalogRecord, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	sortStable(out, sort)
	return out
}

// Paginate recorta la ventana pedida. Un offset negativo o fuera de rango devuelve un slice vacío.
func Paginate(records []entity.CatalogRecord, page Page) []entity.CatalogRecord {
	if page.Offset < 0 || page.Offset > len(records) {
		return []entity.CatalogRecord{}
	}
	end := len(records)
	if page.Limit > 0 && page.Limit < end-page.Offset {
		end = page.Offset + page.Limit
	}
	out := make([]entity.CatalogRecord, end-page.Offset)
	copy(out, records[page.Offset:end])
	return out
}
