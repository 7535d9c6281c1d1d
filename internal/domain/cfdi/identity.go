// Package cfdi: extracción y clasificación de comprobantes CFDI (versiones 3.3 y 4.0) y cálculo
// del identificador usado para deduplicar.

package cfdi

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cfdi-api/internal/domain/entity"
)

// IDLength es la longitud del identificador en caracteres hexadecimales.
const IDLength = 32

// IdentityParams son los campos de negocio que determinan la identidad de una factura.
// La moneda no forma parte de la identidad.
type IdentityParams struct {
	IssuerRFC   string
	ReceiverRFC string
	Series      string
	Folio       string
	Date        string
	Total       decimal.Decimal
}

// ParamsFromInvoice toma los campos de identidad de una factura.
func ParamsFromInvoice(inv *entity.Invoice) IdentityParams {
	return IdentityParams{
		IssuerRFC:   inv.IssuerRFC,
		ReceiverRFC: inv.ReceiverRFC,
		Series:      inv.Series,
		Folio:       inv.Folio,
		Date:        inv.Date,
		Total:       inv.Total,
	}
}

// Identify calcula el identificador: SHA-256 de la concatenación sin separadores
// RfcEmisor + RfcReceptor + Serie + Folio + Fecha + Total, truncado a 32 caracteres hex.
// No es un sello: sólo sirve como llave de deduplicación.
func Identify(p IdentityParams) string {
	cadena := p.IssuerRFC +
		p.ReceiverRFC +
		p.Series +
		p.Folio +
		p.Date +
		FormatAmount(p.Total)

	hash := sha256.Sum256([]byte(cadena))
	return hex.EncodeToString(hash[:])[:IDLength]
}

// FormatAmount es la forma canónica del total dentro de la cadena de identidad:
// sin separador de miles, punto decimal y 2 decimales (ej: 1500.00).
// Cambiarla invalida los identificadores ya almacenados.
func FormatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}
