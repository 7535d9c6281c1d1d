package cfdi

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cfdi-api/internal/domain"
	"github.com/jhoicas/cfdi-api/internal/domain/entity"
)

// Namespaces oficiales del SAT. Se consulta primero la versión 4.0.
const (
	NsCFDI4 = "http://www.sat.gob.mx/cfd/4"
	NsCFDI3 = "http://www.sat.gob.mx/cfd/3"
)

// namespaces en orden de preferencia.
var namespaces = []string{NsCFDI4, NsCFDI3}

// Atributos leídos del comprobante.
const (
	attrRfc      = "Rfc"
	attrTotal    = "Total"
	attrFecha    = "Fecha"
	attrSerie    = "Serie"
	attrFolio    = "Folio"
	attrMoneda   = "Moneda"
	elemEmisor   = "Emisor"
	elemReceptor = "Receptor"
)

// ErrNotApplicable indica que el XML no es una factura utilizable para la empresa:
// falta Emisor o Receptor, o ninguno de los dos RFC es el de la empresa. No es un error de proceso.
var ErrNotApplicable = errors.New("cfdi: el comprobante no aplica a la empresa")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extractor lee comprobantes CFDI y los clasifica respecto al RFC de la empresa.
type Extractor struct {
	companyRFC string
}

// NewExtractor crea el extractor para el RFC de la empresa configurada.
func NewExtractor(companyRFC string) *Extractor {
	return &Extractor{companyRFC: companyRFC}
}

// CompanyRFC devuelve el RFC contra el que se clasifica.
func (x *Extractor) CompanyRFC() string { return x.companyRFC }

// Extract parsea el XML y devuelve la factura con su identificador.
//
// Retorna:
//   - (*entity.Invoice, nil)      si el comprobante es de la empresa.
//   - ErrNotApplicable            si no tiene Emisor/Receptor o no pertenece a la empresa.
//   - domain.ErrMalformedInput    (envuelto) si el XML no es bien formado.
func (x *Extractor) Extract(xmlBytes []byte) (*entity.Invoice, error) {
	return Extract(xmlBytes, x.companyRFC)
}

// Extract es la versión sin estado de Extractor.Extract.
func Extract(xmlBytes []byte, companyRFC string) (*entity.Invoice, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(bytes.TrimPrefix(xmlBytes, utf8BOM)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	root, err := documentRoot(doc)
	if err != nil {
		return nil, err
	}

	// Emisor y Receptor se buscan por separado: cada uno puede resolverse en v4 o en v3.
	emisor := findByNamespaces(root, elemEmisor)
	receptor := findByNamespaces(root, elemReceptor)
	if emisor == nil || receptor == nil {
		return nil, ErrNotApplicable
	}

	rfcEmisor := emisor.SelectAttrValue(attrRfc, "")
	rfcReceptor := receptor.SelectAttrValue(attrRfc, "")
	if rfcEmisor == "" || rfcReceptor == "" {
		return nil, ErrNotApplicable
	}

	tipo, ok := Classify(rfcEmisor, rfcReceptor, companyRFC)
	if !ok {
		return nil, ErrNotApplicable
	}

	inv := &entity.Invoice{
		Type:        tipo,
		IssuerRFC:   rfcEmisor,
		ReceiverRFC: rfcReceptor,
		Total:       parseTotal(root.SelectAttrValue(attrTotal, "")),
		Date:        root.SelectAttrValue(attrFecha, ""),
		Series:      root.SelectAttrValue(attrSerie, ""),
		Folio:       root.SelectAttrValue(attrFolio, ""),
		Currency:    root.SelectAttrValue(attrMoneda, entity.DefaultCurrency),
	}
	inv.ID = Identify(ParamsFromInvoice(inv))
	return inv, nil
}

// Classify decide si la factura es emitida o recibida. Si el emisor y el receptor son
// ambos la empresa (autofactura), gana "emitida".
func Classify(rfcEmisor, rfcReceptor, companyRFC string) (entity.InvoiceType, bool) {
	if companyRFC == "" {
		return "", false
	}
	switch companyRFC {
	case rfcEmisor:
		return entity.InvoiceTypeIssued, true
	case rfcReceptor:
		return entity.InvoiceTypeReceived, true
	}
	return "", false
}

// parseTotal devuelve 0 si el total falta, no es numérico o es negativo.
func parseTotal(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// findByNamespaces busca el primer descendiente con nombre local tag, probando cada
// namespace en orden de preferencia.
func findByNamespaces(root *etree.Element, tag string) *etree.Element {
	for _, ns := range namespaces {
		if el := findDescendant(root, tag, ns); el != nil {
			return el
		}
	}
	return nil
}

// findDescendant recorre en orden de documento los descendientes de e (sin incluirlo).
func findDescendant(e *etree.Element, tag, ns string) *etree.Element {
	for _, child := range e.ChildElements() {
		if child.Tag == tag && child.NamespaceURI() == ns {
			return child
		}
		if found := findDescendant(child, tag, ns); found != nil {
			return found
		}
	}
	return nil
}

// documentRoot exige un único elemento raíz y nada más que espacios en blanco fuera de él.
// etree acepta elementos hermanos o texto después de la raíz; un XML bien formado no.
func documentRoot(doc *etree.Document) (*etree.Element, error) {
	var root *etree.Element
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if root != nil {
				return nil, fmt.Errorf("%w: más de un elemento raíz (<%s>)", domain.ErrMalformedInput, t.FullTag())
			}
			root = t
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return nil, fmt.Errorf("%w: texto fuera del elemento raíz", domain.ErrMalformedInput)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: documento sin elemento raíz", domain.ErrMalformedInput)
	}
	return root, nil
}
