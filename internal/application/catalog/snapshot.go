package catalog

import (
	"sync"

	"github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// Ticket identifica una carga iniciada con Snapshots.Begin.
type Ticket struct {
	key string
	seq uint64
}

// Snapshot conjunto normalizado junto con el reporte de su propia normalización.
type Snapshot struct {
	Records []entity.CatalogRecord
	Report  catalog.Report
}

type entry struct {
	seq      uint64 // 0 = nada aplicado todavía
	inflight int
	snap     Snapshot
}

// Snapshots arbitra cargas solapadas por tienda y tipo: gana la última carga iniciada.
// Si una carga más reciente ya se aplicó, la anterior se descarta al llegar y recibe
// el conjunto vigente. Una clave solo se retiene mientras tenga cargas en curso.
// Seguro para uso concurrente.
type Snapshots struct {
	mu      sync.Mutex
	seq     uint64
	entries map[string]*entry
}

// NewSnapshots construye el registro vacío.
func NewSnapshots() *Snapshots {
	return &Snapshots{entries: make(map[string]*entry)}
}

// SnapshotKey clave de una vista: tienda + tipo de registro.
func SnapshotKey(storeID string, kind entity.RecordKind) string {
	return storeID + "/" + string(kind)
}

// Begin reserva un ticket para una carga que empieza ahora.
// Todo ticket debe cerrarse con Commit o Abandon.
func (s *Snapshots) Begin(key string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.inflight++
	return Ticket{key: key, seq: s.seq}
}

// Commit aplica snap si ninguna carga iniciada después ya fue aplicada para la misma clave.
// Si el ticket quedó obsoleto devuelve el snapshot vigente y false.
func (s *Snapshots) Commit(t Ticket, snap Snapshot) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[t.key]
	if !ok {
		return snap, true
	}
	defer s.release(t.key, e)

	if e.seq > t.seq {
		return e.snap, false
	}
	e.seq, e.snap = t.seq, snap
	return snap, true
}

// Abandon cierra un ticket cuya carga falló.
func (s *Snapshots) Abandon(t Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[t.key]; ok {
		s.release(t.key, e)
	}
}

// Len número de claves retenidas (con cargas en curso).
func (s *Snapshots) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// release descuenta una carga en curso; sin cargas pendientes nadie puede quedar
// obsoleto frente a este conjunto y la clave se libera. Requiere s.mu.
func (s *Snapshots) release(key string, e *entry) {
	e.inflight--
	if e.inflight <= 0 {
		delete(s.entries, key)
	}
}
