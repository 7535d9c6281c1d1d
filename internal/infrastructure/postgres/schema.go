package postgres

import (
	"context"
	"embed"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// EnsureSchema aplica en orden los scripts de migrations/. Todos son idempotentes
// (CREATE ... IF NOT EXISTS), por lo que se ejecutan en cada arranque.
func EnsureSchema(ctx context.Context, q Querier) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		script, err := migrationsFS.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := q.Exec(ctx, string(script)); err != nil {
			return wrapErr("migración "+name, err)
		}
	}
	return nil
}
