package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrMalformedInput     = errors.New("XML mal formado")
	ErrInvalidArchive     = errors.New("el archivo no es un ZIP válido")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
)
