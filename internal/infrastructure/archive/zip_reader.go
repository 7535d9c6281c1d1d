// Package archive lee y arma los ZIP de comprobantes que sube el usuario.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/cfdi-api/internal/domain"
)

// Member es un archivo .xml dentro del ZIP. Si Err no es nil el contenido no pudo leerse
// (CRC inválido, método de compresión no soportado) y Data viene vacío.
type Member struct {
	Name string
	Data []byte
	Err  error
}

// Reader implementa el lector de ZIP en memoria.
type Reader struct {
	// MaxMemberSize limita los bytes descomprimidos por miembro (0 = sin límite).
	MaxMemberSize int64
}

// NewReader construye el lector con el límite por miembro.
func NewReader(maxMemberSize int64) *Reader {
	return &Reader{MaxMemberSize: maxMemberSize}
}

// IsXMLName indica si el nombre termina en .xml sin distinguir mayúsculas.
func IsXMLName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".xml")
}

// ReadXMLMembers devuelve los miembros .xml en el orden del directorio central.
// Un contenedor ilegible devuelve domain.ErrInvalidArchive envuelto.
func (r *Reader) ReadXMLMembers(data []byte) ([]Member, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArchive, err)
	}
	members := make([]Member, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !IsXMLName(f.Name) {
			continue
		}
		b, err := r.readFile(f)
		members = append(members, Member{Name: f.Name, Data: b, Err: err})
	}
	return members, nil
}

// ReadXMLMembers es un atajo sin límite de tamaño.
func ReadXMLMembers(data []byte) ([]Member, error) {
	return (&Reader{}).ReadXMLMembers(data)
}

func (r *Reader) readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("zip: abrir %s: %w", f.Name, err)
	}
	defer rc.Close()

	var src io.Reader = rc
	if r.MaxMemberSize > 0 {
		src = io.LimitReader(rc, r.MaxMemberSize+1)
	}
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("zip: leer %s: %w", f.Name, err)
	}
	if r.MaxMemberSize > 0 && int64(len(b)) > r.MaxMemberSize {
		return nil, fmt.Errorf("zip: %s excede %d bytes descomprimido", f.Name, r.MaxMemberSize)
	}
	return b, nil
}
