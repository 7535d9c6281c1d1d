package entity

import (
	"github.com/shopspring/decimal"
)

// InvoiceType indica si la factura fue emitida o recibida por la empresa configurada.
// Los valores coinciden con la columna "tipo" de la tabla facturas.
type InvoiceType string

const (
	InvoiceTypeIssued   InvoiceType = "emitida"
	InvoiceTypeReceived InvoiceType = "recibida"
)

// Valid reporta si t es una de las dos clasificaciones conocidas.
func (t InvoiceType) Valid() bool {
	return t == InvoiceTypeIssued || t == InvoiceTypeReceived
}

// DefaultCurrency se usa cuando el comprobante no trae el atributo Moneda.
const DefaultCurrency = "MXN"

// Invoice representa un CFDI ya extraído y clasificado.
type Invoice struct {
	ID          string // Identificador derivado (32 hex), llave del upsert
	Type        InvoiceType
	IssuerRFC   string          // Emisor/@Rfc
	ReceiverRFC string          // Receptor/@Rfc
	Total       decimal.Decimal // Comprobante/@Total, nunca negativo
	Date        string          // Comprobante/@Fecha, tal cual viene en el XML
	Series      string
	Folio       string
	Currency    string
}
