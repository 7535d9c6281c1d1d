package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cfdi-api/internal/domain/entity"
	"github.com/jhoicas/cfdi-api/internal/domain/repository"
)

// InvoiceReport datos del reporte PDF.
type InvoiceReport struct {
	CompanyRFC  string
	GeneratedAt time.Time
	Issued      []*entity.Invoice
	Received    []*entity.Invoice
	// Totales por moneda (clave: código ISO tal como viene en el CFDI).
	IssuedTotals   map[string]decimal.Decimal
	ReceivedTotals map[string]decimal.Decimal
}

// ReportUseCase genera el PDF con las facturas emitidas y recibidas.
type ReportUseCase struct {
	list       *ListInvoicesUseCase
	generator  InvoiceReportGenerator
	companyRFC string
	now        func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.InvoiceRepository, generator InvoiceReportGenerator, cfg Config) *ReportUseCase {
	return &ReportUseCase{
		list:       NewListInvoicesUseCase(repo),
		generator:  generator,
		companyRFC: cfg.CompanyRFC,
		now:        time.Now,
	}
}

// WithClock fija el reloj usado para la fecha del reporte y el nombre del archivo.
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// Generate arma el reporte y devuelve (pdfBytes, filename).
func (uc *ReportUseCase) Generate(ctx context.Context) ([]byte, string, error) {
	issued, received, err := uc.list.listByType(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: %w", err)
	}
	now := uc.now()
	rep := &InvoiceReport{
		CompanyRFC:     uc.companyRFC,
		GeneratedAt:    now,
		Issued:         issued,
		Received:       received,
		IssuedTotals:   TotalsByCurrency(issued),
		ReceivedTotals: TotalsByCurrency(received),
	}
	pdfBytes, err := uc.generator.GenerateInvoiceReport(ctx, rep)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("facturas_%s_%s.pdf", uc.companyRFC, now.Format("20060102"))
	return pdfBytes, filename, nil
}

// TotalsByCurrency suma los totales agrupando por moneda.
func TotalsByCurrency(list []*entity.Invoice) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, inv := range list {
		cur := inv.Currency
		if cur == "" {
			cur = entity.DefaultCurrency
		}
		out[cur] = out[cur].Add(inv.Total)
	}
	return out
}
