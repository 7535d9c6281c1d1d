package http

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cfdi-api/internal/application/dto"
	"github.com/jhoicas/cfdi-api/internal/domain/entity"
	"github.com/jhoicas/cfdi-api/pkg/logger"
)

// ArchiveProcessor procesa el ZIP subido (invoicing.ProcessArchiveUseCase).
type ArchiveProcessor interface {
	ProcessArchive(ctx context.Context, data []byte) (*entity.BatchReport, error)
}

// InvoiceLister lista las facturas por clasificación (invoicing.ListInvoicesUseCase).
type InvoiceLister interface {
	List(ctx context.Context) (*dto.InvoiceListResponse, error)
}

// InvoiceReporter genera el PDF del listado (invoicing.ReportUseCase).
type InvoiceReporter interface {
	Generate(ctx context.Context) ([]byte, string, error)
}

// InvoiceHandler maneja la carga de ZIP y la consulta de facturas.
type InvoiceHandler struct {
	processor ArchiveProcessor
	lister    InvoiceLister
	reporter  InvoiceReporter
	log       *logger.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(processor ArchiveProcessor, lister InvoiceLister, reporter InvoiceReporter, log *logger.Logger) *InvoiceHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceHandler{processor: processor, lister: lister, reporter: reporter, log: log}
}

// Process recibe un ZIP con XML CFDI y devuelve el resumen del lote.
// POST /procesar (multipart, campo "file")
func (h *InvoiceHandler) Process(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "campo file requerido"})
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".zip") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Solo .zip"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("abrir archivo subido: %w", err))
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("leer archivo subido: %w", err))
	}

	report, err := h.processor.ProcessArchive(c.UserContext(), data)
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().
		Str("lote_id", report.BatchID).
		Str("archivo", fh.Filename).
		Str("sujeto", GetSubject(c)).
		Msg("ZIP procesado")
	return c.JSON(dto.NewProcessArchiveResponse(report))
}

// List devuelve emitidas y recibidas.
// GET /facturas
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	resp, err := h.lister.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(resp)
}

// Report descarga el PDF del listado.
// GET /facturas/reporte.pdf
func (h *InvoiceHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.reporter.Generate(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
