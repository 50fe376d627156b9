package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// RecordSource define el puerto de lectura de registros crudos de una tienda (DIP).
// Devuelve los registros tal cual los entrega el origen; la normalización es del dominio.
type RecordSource interface {
	FetchRecords(ctx context.Context, storeID string, kind entity.RecordKind) ([]entity.RawRecord, error)
}
