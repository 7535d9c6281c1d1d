package dto

import (
	"github.com/jhoicas/cfdi-api/internal/domain/cfdi"
	"github.com/jhoicas/cfdi-api/internal/domain/entity"
)

// InvoiceResponse factura en las respuestas de GET /facturas.
// Los nombres de campo son los de las columnas de la tabla facturas.
type InvoiceResponse struct {
	ID          string `json:"id_factura"`
	Type        string `json:"tipo"`
	IssuerRFC   string `json:"rfc_emisor"`
	ReceiverRFC string `json:"rfc_receptor"`
	Total       string `json:"total"` // 2 decimales, ej: "1500.00"
	Date        string `json:"fecha"`
	Series      string `json:"serie"`
	Folio       string `json:"folio"`
	Currency    string `json:"moneda"`
}

// InvoiceListResponse respuesta de GET /facturas.
type InvoiceListResponse struct {
	Issued   []InvoiceResponse `json:"emitidas"`
	Received []InvoiceResponse `json:"recibidas"`
}

// BatchFailureResponse miembro del ZIP que no pudo procesarse.
type BatchFailureResponse struct {
	Member  string `json:"archivo"`
	Message string `json:"mensaje"`
}

// ProcessArchiveResponse respuesta de POST /procesar.
// Errors es null cuando no hubo fallos.
type ProcessArchiveResponse struct {
	BatchID   string                 `json:"lote_id"`
	Total     int                    `json:"total"`
	Processed int                    `json:"procesadas"`
	Inserted  int                    `json:"insertadas"`
	Updated   int                    `json:"actualizadas"`
	Skipped   int                    `json:"omitidas"`
	Errors    []BatchFailureResponse `json:"errores"`
}

// NewInvoiceResponse convierte la entidad al DTO.
func NewInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          inv.ID,
		Type:        string(inv.Type),
		IssuerRFC:   inv.IssuerRFC,
		ReceiverRFC: inv.ReceiverRFC,
		Total:       cfdi.FormatAmount(inv.Total),
		Date:        inv.Date,
		Series:      inv.Series,
		Folio:       inv.Folio,
		Currency:    inv.Currency,
	}
}

// NewInvoiceResponses convierte una lista; nunca devuelve nil para que el JSON sea [].
func NewInvoiceResponses(list []*entity.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, NewInvoiceResponse(inv))
	}
	return out
}

// NewProcessArchiveResponse convierte el reporte del lote.
func NewProcessArchiveResponse(r *entity.BatchReport) ProcessArchiveResponse {
	resp := ProcessArchiveResponse{
		BatchID:   r.BatchID,
		Total:     r.Succeeded,
		Processed: r.Succeeded,
		Inserted:  r.Inserted,
		Updated:   r.Updated,
		Skipped:   r.Skipped,
	}
	if len(r.Failures) > 0 {
		resp.Errors = make([]BatchFailureResponse, 0, len(r.Failures))
		for _, f := range r.Failures {
			resp.Errors = append(resp.Errors, BatchFailureResponse{Member: f.Member, Message: f.Message})
		}
	}
	return resp
}
