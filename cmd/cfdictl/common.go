package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/cfdi-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cfdi-api/pkg/config"
	"github.com/jhoicas/cfdi-api/pkg/logger"
)

// newLogger escribe en stderr para no mezclar el log con la salida JSON.
func newLogger(cmd *cobra.Command, cfg *config.Config) *logger.Logger {
	level := "warn"
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = "debug"
	}
	env := "development"
	if cfg != nil && cfg.App.Env != "" {
		env = cfg.App.Env
	}
	return logger.New(logger.Config{Env: env, Level: level, Output: os.Stderr})
}

// openDB conecta y asegura el esquema.
func openDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
