package invoicing

import (
	"context"
	"fmt"

	"github.com/jhoicas/cfdi-api/internal/domain/cfdi"
	"github.com/jhoicas/cfdi-api/internal/domain/repository"
	"github.com/jhoicas/cfdi-api/pkg/logger"
)

// RehashResult resumen de RehashUseCase.Run.
type RehashResult struct {
	Scanned int
	Changed int
}

// RehashUseCase recalcula id_factura de las filas guardadas con la regla vigente
// (ej. datos cargados por una versión anterior que formateaba el total distinto).
type RehashUseCase struct {
	repo repository.InvoiceRepository
	log  *logger.Logger
}

// NewRehashUseCase construye el caso de uso.
func NewRehashUseCase(repo repository.InvoiceRepository, log *logger.Logger) *RehashUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RehashUseCase{repo: repo, log: log}
}

// Run recorre todas las facturas y reemplaza los identificadores que no coinciden.
// Dos filas que colapsan al mismo identificador se fusionan (queda la que ya lo tenía).
func (uc *RehashUseCase) Run(ctx context.Context) (RehashResult, error) {
	var res RehashResult
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return res, fmt.Errorf("rehash: %w", err)
	}
	for _, inv := range list {
		res.Scanned++
		newID := cfdi.Identify(cfdi.ParamsFromInvoice(inv))
		if newID == inv.ID {
			continue
		}
		if err := uc.repo.ReplaceID(ctx, inv.ID, newID); err != nil {
			return res, fmt.Errorf("rehash %s: %w", inv.ID, err)
		}
		uc.log.Debug().Str("anterior", inv.ID).Str("nuevo", newID).Msg("identificador actualizado")
		res.Changed++
	}
	uc.log.Info().Int("revisadas", res.Scanned).Int("cambiadas", res.Changed).Msg("rehash terminado")
	return res, nil
}
