package invoicing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/cfdi-api/internal/domain"
	"github.com/jhoicas/cfdi-api/internal/domain/cfdi"
	"github.com/jhoicas/cfdi-api/internal/domain/entity"
	"github.com/jhoicas/cfdi-api/internal/domain/repository"
	"github.com/jhoicas/cfdi-api/pkg/logger"
)

// Config del caso de uso. CompanyRFC se fija al arranque.
type Config struct {
	CompanyRFC string
}

// ProcessArchiveUseCase procesa un ZIP de CFDI: extrae, clasifica, deduplica y persiste
// cada XML. Es secuencial y no guarda estado entre llamadas.
type ProcessArchiveUseCase struct {
	reader    ArchiveReader
	repo      repository.InvoiceRepository
	extractor *cfdi.Extractor
	log       *logger.Logger
}

// NewProcessArchiveUseCase construye el caso de uso.
func NewProcessArchiveUseCase(
	reader ArchiveReader,
	repo repository.InvoiceRepository,
	cfg Config,
	log *logger.Logger,
) *ProcessArchiveUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProcessArchiveUseCase{
		reader:    reader,
		repo:      repo,
		extractor: cfdi.NewExtractor(cfg.CompanyRFC),
		log:       log,
	}
}

// ProcessArchive recorre los .xml del ZIP en el orden del archivo.
//
// Por miembro:
//   - no aplica a la empresa            → se omite (cuenta en Skipped, no es fallo).
//   - XML mal formado o ilegible        → se agrega a Failures y se continúa.
//   - factura válida                    → Upsert por ID y Succeeded++.
//
// Retorna error (y ningún reporte) sólo si el ZIP no puede abrirse
// (domain.ErrInvalidArchive) o si el almacenamiento no está disponible
// (domain.ErrStorageUnavailable). En este último caso los upserts anteriores
// del mismo lote ya quedaron confirmados.
func (uc *ProcessArchiveUseCase) ProcessArchive(ctx context.Context, data []byte) (*entity.BatchReport, error) {
	members, err := uc.reader.ReadXMLMembers(data)
	if err != nil {
		return nil, err
	}

	report := &entity.BatchReport{BatchID: uuid.NewString()}
	log := uc.log.Child(uc.log.With().Str("lote_id", report.BatchID))

	for _, m := range members {
		if m.Err != nil {
			report.AddFailure(m.Name, m.Err.Error())
			log.Warn().Str("archivo", m.Name).Err(m.Err).Msg("miembro ilegible")
			continue
		}

		inv, err := uc.extractor.Extract(m.Data)
		if errors.Is(err, cfdi.ErrNotApplicable) {
			report.Skipped++
			log.Debug().Str("archivo", m.Name).Msg("comprobante no aplica a la empresa")
			continue
		}
		if err != nil {
			report.AddFailure(m.Name, err.Error())
			log.Warn().Str("archivo", m.Name).Err(err).Msg("XML rechazado")
			continue
		}

		inserted, err := uc.repo.Upsert(ctx, inv)
		if err != nil {
			if errors.Is(err, domain.ErrStorageUnavailable) {
				log.Error().Err(err).
					Str("archivo", m.Name).
					Int("procesadas", report.Succeeded).
					Msg("lote abortado: almacenamiento no disponible")
				return nil, fmt.Errorf("lote %s: %w", report.BatchID, err)
			}
			report.AddFailure(m.Name, err.Error())
			log.Warn().Str("archivo", m.Name).Err(err).Msg("no se pudo guardar la factura")
			continue
		}

		report.Succeeded++
		if inserted {
			report.Inserted++
		} else {
			report.Updated++
		}
	}

	log.Info().
		Int("miembros", len(members)).
		Int("procesadas", report.Succeeded).
		Int("insertadas", report.Inserted).
		Int("actualizadas", report.Updated).
		Int("omitidas", report.Skipped).
		Int("errores", len(report.Failures)).
		Msg("lote procesado")
	return report, nil
}
