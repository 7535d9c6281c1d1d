package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cfdi-api/internal/application/dto"
	"github.com/jhoicas/cfdi-api/internal/domain/cfdi"
	pkgcfdi "github.com/jhoicas/cfdi-api/pkg/cfdi"
	"github.com/jhoicas/cfdi-api/pkg/config"
)

func extraerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extraer <archivo.xml>",
		Short: "Extrae y clasifica un XML sin tocar la base de datos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("leer %s: %w", args[0], err)
			}
			rfc, _ := cmd.Flags().GetString("rfc")
			if rfc == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				rfc = cfg.CFDI.CompanyRFC
			}
			return runExtract(cmd.OutOrStdout(), data, pkgcfdi.NormalizeRFC(rfc))
		},
	}
	cmd.Flags().String("rfc", "", "RFC de la empresa (por defecto RFC_EMPRESA)")
	return cmd
}

// runExtract imprime la factura como JSON, o "no aplica" si el comprobante no es de la empresa.
func runExtract(w io.Writer, data []byte, companyRFC string) error {
	inv, err := cfdi.Extract(data, companyRFC)
	if errors.Is(err, cfdi.ErrNotApplicable) {
		_, err = fmt.Fprintln(w, "no aplica")
		return err
	}
	if err != nil {
		return err
	}
	return printJSON(w, dto.NewInvoiceResponse(inv))
}
