package cfdi_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/cfdi-api/internal/domain"
	"github.com/jhoicas/cfdi-api/internal/domain/cfdi"
	"github.com/jhoicas/cfdi-api/internal/domain/entity"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

const cfdi40 = `<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" Version="4.0"
    Total="1500.00" Fecha="2024-03-01T10:00:00" Serie="A" Folio="123" Moneda="USD">
  <cfdi:Emisor Rfc="AAA010101AAA" Nombre="EMISORA SA DE CV" RegimenFiscal="601"/>
  <cfdi:Receptor Rfc="BBB020202BBB" Nombre="RECEPTORA SA DE CV" UsoCFDI="G03"/>
  <cfdi:Conceptos>
    <cfdi:Concepto Importe="1500.00" Descripcion="Servicio"/>
  </cfdi:Conceptos>
</cfdi:Comprobante>`

const cfdi33 = `<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/3" Version="3.3"
    Total="980.50" Fecha="2021-07-15T09:30:00">
  <cfdi:Emisor Rfc="CCC030303CCC"/>
  <cfdi:Receptor Rfc="AAA010101AAA"/>
</cfdi:Comprobante>`

// comprobante mínimo: sin Serie, Folio, Moneda ni Total.
func minimal(ns, emisor, receptor string) string {
	return fmt.Sprintf(`<cfdi:Comprobante xmlns:cfdi="%s" Fecha="2024-01-01T00:00:00">`+
		`<cfdi:Emisor Rfc="%s"/><cfdi:Receptor Rfc="%s"/></cfdi:Comprobante>`, ns, emisor, receptor)
}

// ── clasificación ─────────────────────────────────────────────────────────────

func TestExtract_EmitidaCFDI40(t *testing.T) {
	inv, err := cfdi.Extract([]byte(cfdi40), "AAA010101AAA")
	require.NoError(t, err)
	require.NotNil(t, inv)

	assert.Equal(t, entity.InvoiceTypeIssued, inv.Type)
	assert.Equal(t, "AAA010101AAA", inv.IssuerRFC)
	assert.Equal(t, "BBB020202BBB", inv.ReceiverRFC)
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("1500.00")), "total: %s", inv.Total)
	assert.Equal(t, "2024-03-01T10:00:00", inv.Date)
	assert.Equal(t, "A", inv.Series)
	assert.Equal(t, "123", inv.Folio)
	assert.Equal(t, "USD", inv.Currency)
	assert.Equal(t, testIDExpected, inv.ID)
}

func TestExtract_RecibidaCFDI33(t *testing.T) {
	inv, err := cfdi.Extract([]byte(cfdi33), "AAA010101AAA")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceTypeReceived, inv.Type)
	assert.Equal(t, "CCC030303CCC", inv.IssuerRFC)
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("980.5")))
	assert.Equal(t, entity.DefaultCurrency, inv.Currency)
	assert.Len(t, inv.ID, cfdi.IDLength)
}

func TestExtract_NoPerteneceALaEmpresa(t *testing.T) {
	inv, err := cfdi.Extract([]byte(cfdi40), "ZZZ999999ZZZ")
	assert.Nil(t, inv)
	assert.ErrorIs(t, err, cfdi.ErrNotApplicable)
	assert.False(t, errors.Is(err, domain.ErrMalformedInput), "no aplica no es un error de formato")
}

// Autofactura: emisor == receptor == empresa → gana "emitida".
func TestExtract_AutofacturaEsEmitida(t *testing.T) {
	xml := minimal(cfdi.NsCFDI4, "AAA010101AAA", "AAA010101AAA")
	inv, err := cfdi.Extract([]byte(xml), "AAA010101AAA")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceTypeIssued, inv.Type)
}

func TestExtract_RFCEmpresaVacioNuncaAplica(t *testing.T) {
	xml := `<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4">` +
		`<cfdi:Emisor Rfc=""/><cfdi:Receptor Rfc="BBB020202BBB"/></cfdi:Comprobante>`
	_, err := cfdi.Extract([]byte(xml), "")
	assert.ErrorIs(t, err, cfdi.ErrNotApplicable)
}

// ── namespaces ────────────────────────────────────────────────────────────────

func TestExtract_SinEmisorNoAplica(t *testing.T) {
	xml := `<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4">` +
		`<cfdi:Receptor Rfc="AAA010101AAA"/></cfdi:Comprobante>`
	_, err := cfdi.Extract([]byte(xml), "AAA010101AAA")
	assert.ErrorIs(t, err, cfdi.ErrNotApplicable)
}

func TestExtract_NamespaceDesconocidoNoAplica(t *testing.T) {
	xml := minimal("http://www.sat.gob.mx/cfd/2", "AAA010101AAA", "BBB020202BBB")
	_, err := cfdi.Extract([]byte(xml), "AAA010101AAA")
	assert.ErrorIs(t, err, cfdi.ErrNotApplicable)
}

// Emisor en v4 y Receptor sólo en v3: cada uno se resuelve por separado.
func TestExtract_NamespacesMezclados(t *testing.T) {
	xml := `<Comprobante xmlns:c4="http://www.sat.gob.mx/cfd/4" xmlns:c3="http://www.sat.gob.mx/cfd/3" Total="10">` +
		`<c4:Emisor Rfc="AAA010101AAA"/><c3:Receptor Rfc="BBB020202BBB"/></Comprobante>`
	inv, err := cfdi.Extract([]byte(xml), "BBB020202BBB")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceTypeReceived, inv.Type)
	assert.Equal(t, "AAA010101AAA", inv.IssuerRFC)
}

// Si el Emisor existe en ambas versiones, se toma el de v4.
func TestExtract_PrefiereV4SobreV3(t *testing.T) {
	xml := `<Comprobante xmlns:c4="http://www.sat.gob.mx/cfd/4" xmlns:c3="http://www.sat.gob.mx/cfd/3">` +
		`<c3:Emisor Rfc="VIEJO010101AAA"/><c4:Emisor Rfc="AAA010101AAA"/>` +
		`<c4:Receptor Rfc="BBB020202BBB"/></Comprobante>`
	inv, err := cfdi.Extract([]byte(xml), "AAA010101AAA")
	require.NoError(t, err)
	assert.Equal(t, "AAA010101AAA", inv.IssuerRFC)
	assert.Equal(t, entity.InvoiceTypeIssued, inv.Type)
}

// Namespace por defecto (sin prefijo).
func TestExtract_NamespacePorDefecto(t *testing.T) {
	xml := `<Comprobante xmlns="http://www.sat.gob.mx/cfd/4" Total="1">` +
		`<Emisor Rfc="AAA010101AAA"/><Receptor Rfc="BBB020202BBB"/></Comprobante>`
	inv, err := cfdi.Extract([]byte(xml), "AAA010101AAA")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceTypeIssued, inv.Type)
}

func TestExtract_EmisorSinRfcNoAplica(t *testing.T) {
	xml := `<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4">` +
		`<cfdi:Emisor/><cfdi:Receptor Rfc="AAA010101AAA"/></cfdi:Comprobante>`
	_, err := cfdi.Extract([]byte(xml), "AAA010101AAA")
	assert.ErrorIs(t, err, cfdi.ErrNotApplicable)
}

// ── valores por defecto ───────────────────────────────────────────────────────

func TestExtract_ValoresPorDefecto(t *testing.T) {
	inv, err := cfdi.Extract([]byte(minimal(cfdi.NsCFDI4, "AAA010101AAA", "BBB020202BBB")), "AAA010101AAA")
	require.NoError(t, err)
	assert.True(t, inv.Total.IsZero())
	assert.Equal(t, "", inv.Series)
	assert.Equal(t, "", inv.Folio)
	assert.Equal(t, "MXN", inv.Currency)
}

func TestExtract_TotalInvalidoEsCero(t *testing.T) {
	for _, total := range []string{"abc", "", "-15.00", "1,500.00"} {
		xml := fmt.Sprintf(`<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" Total="%s">`+
			`<cfdi:Emisor Rfc="AAA010101AAA"/><cfdi:Receptor Rfc="BBB020202BBB"/></cfdi:Comprobante>`, total)
		inv, err := cfdi.Extract([]byte(xml), "AAA010101AAA")
		require.NoError(t, err, "total %q", total)
		assert.True(t, inv.Total.IsZero(), "total %q debe quedar en 0, quedó %s", total, inv.Total)
	}
}

// ── XML mal formado ───────────────────────────────────────────────────────────

func TestExtract_XMLMalFormado(t *testing.T) {
	for name, raw := range map[string]string{
		"truncado":         `<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4"><cfdi:Emisor`,
		"vacío":            ``,
		"texto":            `esto no es xml`,
		"cierre":           `<a><b></a>`,
		"segunda raíz":     cfdi40 + `<otro/>`,
		"basura al final":  cfdi40 + `basura`,
		"hermano anterior": `<x/>` + cfdi40,
	} {
		inv, err := cfdi.Extract([]byte(raw), "AAA010101AAA")
		assert.Nil(t, inv, name)
		assert.ErrorIs(t, err, domain.ErrMalformedInput, name)
	}
}

// ── codificación ──────────────────────────────────────────────────────────────

func TestExtract_ConBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte(cfdi40)...)
	inv, err := cfdi.Extract(raw, "AAA010101AAA")
	require.NoError(t, err)
	assert.Equal(t, testIDExpected, inv.ID)
}

func TestExtract_ISO88591(t *testing.T) {
	src := `<?xml version="1.0" encoding="ISO-8859-1"?>` +
		`<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" Total="1">` +
		`<cfdi:Emisor Rfc="AAA010101AAA" Nombre="PEÑA"/><cfdi:Receptor Rfc="BBB020202BBB"/></cfdi:Comprobante>`
	latin1, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	inv, err := cfdi.Extract([]byte(latin1), "AAA010101AAA")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceTypeIssued, inv.Type)
}

func TestExtractor_UsaRFCConfigurado(t *testing.T) {
	x := cfdi.NewExtractor("BBB020202BBB")
	inv, err := x.Extract([]byte(cfdi40))
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceTypeReceived, inv.Type)
	assert.Equal(t, "BBB020202BBB", x.CompanyRFC())
}

func TestClassify(t *testing.T) {
	cases := []struct {
		emisor, receptor, empresa string
		want                      entity.InvoiceType
		ok                        bool
	}{
		{"A", "B", "A", entity.InvoiceTypeIssued, true},
		{"A", "B", "B", entity.InvoiceTypeReceived, true},
		{"A", "A", "A", entity.InvoiceTypeIssued, true},
		{"A", "B", "C", "", false},
		{"", "", "", "", false},
	}
	for _, c := range cases {
		got, ok := cfdi.Classify(c.emisor, c.receptor, c.empresa)
		assert.Equal(t, c.ok, ok, "%+v", c)
		assert.Equal(t, c.want, got, "%+v", c)
	}
}
