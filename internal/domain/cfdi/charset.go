package cfdi

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// charsetReader transcodifica a UTF-8 los CFDI que declaran otro encoding
// (comunes en comprobantes 3.3 generados por sistemas contables antiguos).
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "UTF-8", "UTF8", "":
		return input, nil
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("encoding no soportado: %q", label)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
