package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
)

// File es una entrada para BuildZip.
type File struct {
	Name string
	Data []byte
}

// BuildZip empaqueta los archivos en un ZIP en memoria, en el orden recibido.
func BuildZip(files ...File) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range files {
		fw, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("zip: crear entrada %s: %w", f.Name, err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return nil, fmt.Errorf("zip: escribir %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildZipFromMap empaqueta un mapa nombre → contenido con los nombres ordenados
// para que la salida sea estable.
func BuildZipFromMap(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)
	list := make([]File, 0, len(names))
	for _, n := range names {
		list = append(list, File{Name: n, Data: files[n]})
	}
	return BuildZip(list...)
}
