package cfdi

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Longitudes del RFC según el tipo de contribuyente (SAT).
const (
	RFCLengthMoral  = 12 // persona moral: 3 letras + fecha + homoclave
	RFCLengthFisica = 13 // persona física: 4 letras + fecha + homoclave
)

// RFCs genéricos publicados por el SAT.
const (
	RFCPublicoGeneral  = "XAXX010101000"
	RFCResidenteExtran = "XEXX010101000"
)

// rfcPattern: letras (incluye Ñ y &), fecha AAMMDD y homoclave de 3 caracteres.
var rfcPattern = regexp.MustCompile(`^[A-ZÑ&]{3,4}[0-9]{2}(0[1-9]|1[0-2])(0[1-9]|[12][0-9]|3[01])[A-Z0-9]{2}[0-9A]$`)

// NormalizeRFC quita espacios y pasa a mayúsculas.
func NormalizeRFC(rfc string) string {
	return strings.ToUpper(strings.TrimSpace(rfc))
}

// ValidateRFC valida la estructura del RFC (no consulta la lista del SAT ni verifica la homoclave).
// Acepta RFC de persona moral (12) y física (13).
func ValidateRFC(rfc string) error {
	n := utf8.RuneCountInString(rfc)
	if n != RFCLengthMoral && n != RFCLengthFisica {
		return fmt.Errorf("cfdi: RFC debe tener %d o %d caracteres, se recibieron %d", RFCLengthMoral, RFCLengthFisica, n)
	}
	if !rfcPattern.MatchString(rfc) {
		return fmt.Errorf("cfdi: RFC %q no tiene el formato del SAT", rfc)
	}
	return nil
}

// IsGenericRFC indica si el RFC es uno de los genéricos (público en general o extranjero).
func IsGenericRFC(rfc string) bool {
	return rfc == RFCPublicoGeneral || rfc == RFCResidenteExtran
}
