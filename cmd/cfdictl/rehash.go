package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cfdi-api/internal/application/invoicing"
	"github.com/jhoicas/cfdi-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cfdi-api/pkg/config"
)

func rehashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rehash",
		Short: "Recalcula id_factura de todas las filas con la regla vigente",
		Long: `Recalcula el identificador de cada factura guardada. Útil después de cargar
datos generados con otro formato del total. Todo ocurre en una sola transacción.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := newLogger(cmd, cfg)
			ctx := cmd.Context()

			pool, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			var res invoicing.RehashResult
			err = postgres.NewTxRunner(pool).Run(ctx, func(repo *postgres.InvoiceRepo) error {
				var runErr error
				res, runErr = invoicing.NewRehashUseCase(repo, log).Run(ctx)
				return runErr
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "revisadas: %d, cambiadas: %d\n", res.Scanned, res.Changed)
			return err
		},
	}
}
