package invoicing

import (
	"context"

	"github.com/jhoicas/cfdi-api/internal/infrastructure/archive"
)

// ArchiveReader abre el ZIP subido y devuelve sus miembros .xml.
// Un contenedor ilegible debe envolver domain.ErrInvalidArchive.
type ArchiveReader interface {
	ReadXMLMembers(data []byte) ([]archive.Member, error)
}

// InvoiceReportGenerator genera la representación PDF del listado de facturas.
type InvoiceReportGenerator interface {
	GenerateInvoiceReport(ctx context.Context, report *InvoiceReport) ([]byte, error)
}
