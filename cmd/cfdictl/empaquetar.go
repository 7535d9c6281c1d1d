package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cfdi-api/internal/infrastructure/archive"
)

func empaquetarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "empaquetar <directorio> <salida.zip>",
		Short: "Arma un ZIP con los .xml de un directorio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := packDir(args[0], args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d archivos en %s\n", n, args[1])
			return err
		},
	}
}

// packDir empaqueta los .xml del primer nivel de dir, ordenados por nombre.
func packDir(dir, out string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("leer directorio %s: %w", dir, err)
	}
	files := make(map[string][]byte)
	for _, e := range entries {
		if e.IsDir() || !archive.IsXMLName(e.Name()) {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return 0, err
		}
		files[e.Name()] = b
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("%s no contiene archivos .xml", dir)
	}
	data, err := archive.BuildZipFromMap(files)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return 0, fmt.Errorf("escribir %s: %w", out, err)
	}
	return len(files), nil
}
