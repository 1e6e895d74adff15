package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/storage"
)

func tenantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Gestión de empresas",
	}
	cmd.AddCommand(tenantCreateCmd())
	return cmd
}

// tenantCreateCmd alta de empresa + admin por el mismo camino que POST /api/auth/register.
func tenantCreateCmd() *cobra.Command {
	var in dto.RegisterRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crear una empresa con su usuario administrador",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := storage.Open(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer store.Close()

			uc := auth.NewAuthUseCase(store.Tx, store.Repos.Users, auth.JWTConfig{
				Secret:     cfg.JWT.Secret,
				ExpMinutes: cfg.JWT.Expiration,
				Issuer:     cfg.JWT.Issuer,
			})
			out, err := uc.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "empresa: %s (%s)\n", out.User.CompanyName, out.User.CompanyID)
			fmt.Fprintf(w, "admin:   %s (%s)\n", out.User.Email, out.User.ID)
			fmt.Fprintf(w, "token:   %s\n", out.Token)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.CompanyName, "company", "", "nombre de la empresa")
	f.StringVar(&in.Name, "name", "", "nombre del administrador")
	f.StringVar(&in.Email, "email", "", "email del administrador")
	f.StringVar(&in.Password, "password", "", "contraseña del administrador (mínimo 8)")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
