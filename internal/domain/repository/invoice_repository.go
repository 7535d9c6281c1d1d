package repository

import (
	"context"

	"github.com/jhoicas/cfdi-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia de facturas.
// Las fallas de conectividad se reportan envolviendo domain.ErrStorageUnavailable.
type InvoiceRepository interface {
	// Upsert inserta la factura o, si el ID ya existe, actualiza total y fecha conservando el resto.
	// Es atómico por registro. inserted indica si la fila es nueva.
	Upsert(ctx context.Context, invoice *entity.Invoice) (inserted bool, err error)
	// ListByType devuelve las facturas de una clasificación, fecha más reciente primero.
	ListByType(ctx context.Context, t entity.InvoiceType) ([]*entity.Invoice, error)
	// ListAll devuelve todas las facturas (mantenimiento).
	ListAll(ctx context.Context) ([]*entity.Invoice, error)
	// ReplaceID cambia el identificador de una fila. Si newID ya existe, la fila vieja se elimina.
	ReplaceID(ctx context.Context, oldID, newID string) error
	// Ping verifica la conexión.
	Ping(ctx context.Context) error
}
