package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cfdi-api/internal/domain"
	"github.com/jhoicas/cfdi-api/pkg/config"
)

// Límites del pool: las cargas son secuenciales por petición y los listados cortos.
const (
	poolMaxConns        = 10
	poolMinConns        = 1
	poolMaxConnLifetime = time.Hour
	poolMaxConnIdleTime = 30 * time.Minute
)

// NewPool abre el pool contra DATABASE_URL o el DSN armado con DB_*.
// Con cfg.PreferIPv4 el host se resuelve primero a IPv4.
// Un servidor inalcanzable devuelve domain.ErrStorageUnavailable envuelto.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if cfg.PreferIPv4 {
		poolConfig.ConnConfig.LookupFunc = func(ctx context.Context, host string) ([]string, error) {
			return lookupPreferIPv4(ctx, net.DefaultResolver, host)
		}
	}
	if cfg.ConnectTimeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	poolConfig.MaxConns = poolMaxConns
	poolConfig.MinConns = poolMinConns
	poolConfig.MaxConnLifetime = poolMaxConnLifetime
	poolConfig.MaxConnIdleTime = poolMaxConnIdleTime
	poolConfig.HealthCheckPeriod = time.Minute

	// NUMERIC ↔ decimal.Decimal en todas las conexiones (columna total).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapErr("crear pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return pool, nil
}

// ipResolver es la parte de *net.Resolver que se usa (sustituible en pruebas).
type ipResolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// lookupPreferIPv4 devuelve sólo la IPv4 del host cuando existe; si no, todas sus direcciones.
func lookupPreferIPv4(ctx context.Context, r ipResolver, host string) ([]string, error) {
	if ip, err := lookupIPv4(ctx, r, host); err == nil {
		return []string{ip}, nil
	}
	if net.ParseIP(host) != nil {
		return []string{host}, nil
	}
	return r.LookupHost(ctx, host)
}

// lookupIPv4 devuelve host si ya es una IPv4 literal, o la primera IPv4 que resuelva.
func lookupIPv4(ctx context.Context, r ipResolver, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	ips, err := r.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	return "", fmt.Errorf("%s sin dirección IPv4", host)
}
