// invoicectl herramienta de operación: migraciones y alta de empresas.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturacion-api/pkg/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Operación de Facturación API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(migrateCmd(), tenantCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig lee la misma configuración que el API (env + .env).
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	return cfg, nil
}
