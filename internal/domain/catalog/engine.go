package catalog

import (
	"fmt"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// StatsScope conjunto sobre el que se calculan las estadísticas.
type StatsScope string

const (
	ScopeFull     StatsScope = "full"     // todos los registros cargados
	ScopeFiltered StatsScope = "filtered" // solo los que pasan el filtro
)

// Query configuración completa de una invocación del motor.
type Query struct {
	Criteria   FilterCriteria
	Sort       SortSpec
	Page       Page
	StatsScope StatsScope // vacío = ScopeFull
}

// Result salida del motor para el adaptador de vista.
type Result struct {
	VisibleRecords []entity.CatalogRecord // página pedida, ya ordenada
	Matched        int                    // registros que pasan el filtro (antes de paginar)
	Stats          Stats
}

// Run ejecuta filtro → orden → página y calcula las estadísticas en la misma invocación.
// Un kind desconocido es un error de programación y provoca panic.
func Run(kind entity.RecordKind, records []entity.CatalogRecord, q Query) Result {
	if !kind.Valid() {
		panic(fmt.Sprintf("catalog: Run con kind desconocido %q", kind))
	}
	matched := filterAndSort(records, q.Criteria, q.Sort)

	statsInput := records
	if q.StatsScope == ScopeFiltered {
		statsInput = matched
	}

	return Result{
		VisibleRecords: Paginate(matched, q.Page),
		Matched:        len(matched),
		Stats:          Aggregate(kind, statsInput),
	}
}
