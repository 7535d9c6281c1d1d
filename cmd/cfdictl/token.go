package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cfdi-api/pkg/config"
	"github.com/jhoicas/cfdi-api/pkg/jwt"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT para POST /procesar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.JWT.Enabled() {
				return fmt.Errorf("JWT_SECRET no está configurado")
			}
			subject, _ := cmd.Flags().GetString("sujeto")
			minutes, _ := cmd.Flags().GetInt("minutos")
			if minutes <= 0 {
				minutes = cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, subject, cfg.CFDI.CompanyRFC, cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().String("sujeto", "cfdictl", "subject del token")
	cmd.Flags().Int("minutos", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}
