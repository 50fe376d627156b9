package catalog_test

import (
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

func recs(ids ...string) []entity.CatalogRecord {
	out := make([]entity.CatalogRecord, len(ids))
	for i, id := range ids {
		out[i] = entity.CatalogRecord{ID: id, Kind: entity.KindProduct, Status: entity.StatusActive}
	}
	return out
}

func snap(ids ...string) appcatalog.Snapshot {
	return appcatalog.Snapshot{Records: recs(ids...), Report: catalog.Report{Received: len(ids), Kept: len(ids)}}
}

func TestSnapshots_CargaAntiguaNoPisaLaReciente(t *testing.T) {
	s := appcatalog.NewSnapshots()
	key := appcatalog.SnapshotKey("store-1", entity.KindProduct)

	older := s.Begin(key)
	newer := s.Begin(key)

	got, fresh := s.Commit(newer, snap("nuevo"))
	assert.True(t, fresh)
	assert.Equal(t, "nuevo", got.Records[0].ID)

	stale := snap("viejo", "viejo-2")
	got, fresh = s.Commit(older, stale)
	assert.False(t, fresh, "la carga iniciada antes llega tarde")
	require.Len(t, got.Records, 1)
	assert.Equal(t, "nuevo", got.Records[0].ID)
	assert.Equal(t, 1, got.Report.Received, "el reporte acompaña al conjunto vigente")
}

func TestSnapshots_CargasEnOrdenSeAplicanTodas(t *testing.T) {
	s := appcatalog.NewSnapshots()
	key := appcatalog.SnapshotKey("store-1", entity.KindOrder)

	got, fresh := s.Commit(s.Begin(key), snap("a"))
	assert.True(t, fresh)
	assert.Equal(t, "a", got.Records[0].ID)
	got, fresh = s.Commit(s.Begin(key), snap("b"))
	assert.True(t, fresh)
	assert.Equal(t, "b", got.Records[0].ID)
}

func TestSnapshots_ClavesIndependientes(t *testing.T) {
	s := appcatalog.NewSnapshots()
	products := s.Begin(appcatalog.SnapshotKey("store-1", entity.KindProduct))
	orders := s.Begin(appcatalog.SnapshotKey("store-1", entity.KindOrder))

	_, fresh := s.Commit(orders, snap("o"))
	assert.True(t, fresh)
	_, fresh = s.Commit(products, snap("p"))
	assert.True(t, fresh, "un ticket de otra clave no lo invalida")
}

func TestSnapshots_SinCargasEnCursoLiberaLaClave(t *testing.T) {
	s := appcatalog.NewSnapshots()
	for i := 0; i < 10; i++ {
		key := appcatalog.SnapshotKey(fmt.Sprintf("store-%d", i), entity.KindProduct)
		s.Commit(s.Begin(key), snap("x"))
	}
	assert.Zero(t, s.Len(), "ningún conjunto queda retenido tras aplicarse")

	key := appcatalog.SnapshotKey("store-1", entity.KindOrder)
	older := s.Begin(key)
	s.Commit(s.Begin(key), snap("nuevo"))
	assert.Equal(t, 1, s.Len(), "se retiene mientras la carga antigua siga en curso")
	s.Commit(older, snap("viejo"))
	assert.Zero(t, s.Len())

	failed := s.Begin(key)
	s.Abandon(failed)
	assert.Zero(t, s.Len(), "una carga fallida también libera la clave")
}

func TestSnapshots_Concurrente_GanaElUltimoTicket(t *testing.T) {
	s := appcatalog.NewSnapshots()
	key := appcatalog.SnapshotKey("store-1", entity.KindProduct)

	const n = 64
	tickets := make([]appcatalog.Ticket, n)
	for i := range tickets {
		tickets[i] = s.Begin(key)
	}

	results := make([]appcatalog.Snapshot, n)
	var wg sync.WaitGroup
	for i := n - 1; i >= 0; i-- {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = s.Commit(tickets[i], snap(strconv.Itoa(i)))
		}(i)
	}
	wg.Wait()

	last, err := strconv.Atoi(results[n-1].Records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, n-1, last, "el último ticket nunca queda obsoleto")
	for i, r := range results {
		got, err := strconv.Atoi(r.Records[0].ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, i, "nunca se responde con una carga más antigua")
	}
	assert.Zero(t, s.Len())
}
