package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/cfdi-api/internal/domain"
)

// isUnavailable reconoce fallas de conectividad: no se pudo conectar, la conexión se cayó,
// el servidor se está apagando o se agotó el tiempo.
func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Clase 08: connection exception. 57P01..57P03: apagado / no acepta conexiones.
		return strings.HasPrefix(pgErr.Code, "08") ||
			pgErr.Code == "57P01" || pgErr.Code == "57P02" || pgErr.Code == "57P03"
	}
	if pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return strings.Contains(err.Error(), "closed pool")
}

// wrapErr envuelve err con la operación y marca las fallas de conectividad como
// domain.ErrStorageUnavailable.
func wrapErr(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
