// cfdictl opera el procesador de CFDI desde la terminal: procesa ZIP contra la base
// configurada, prueba el extractor sobre un XML suelto, recalcula identificadores,
// emite tokens para la API y arma ZIP de prueba.
//
// La configuración se lee igual que en cmd/api (.env, config.env y variables de entorno).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cfdictl",
		Short:         "Herramientas del procesador de CFDI",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool("verbose", false, "log detallado en stderr")

	rootCmd.AddCommand(procesarCmd())
	rootCmd.AddCommand(extraerCmd())
	rootCmd.AddCommand(rehashCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(empaquetarCmd())
	return rootCmd
}
