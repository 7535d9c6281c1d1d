package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cfdi-api/internal/application/dto"
	"github.com/jhoicas/cfdi-api/internal/application/invoicing"
	"github.com/jhoicas/cfdi-api/internal/infrastructure/archive"
	"github.com/jhoicas/cfdi-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cfdi-api/pkg/config"
)

func procesarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "procesar <archivo.zip>",
		Short: "Procesa un ZIP de CFDI contra la base configurada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("leer %s: %w", args[0], err)
			}
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

			uc := invoicing.NewProcessArchiveUseCase(
				archive.NewReader(0),
				postgres.NewInvoiceRepository(pool),
				invoicing.Config{CompanyRFC: cfg.CFDI.CompanyRFC},
				log,
			)
			report, err := uc.ProcessArchive(ctx, data)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.NewProcessArchiveResponse(report))
		},
	}
}
