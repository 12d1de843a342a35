package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gocatalog/internal/pkg/token"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd emite um JWT de operador para as rotas de escrita.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "token",
		Short:        "Issue an operator JWT for gocatalog write routes",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			secret := v.GetString("JWT_SECRET_KEY")
			if secret == "" {
				return errors.New("JWT_SECRET_KEY must be set (env or --secret)")
			}

			expiry := time.Duration(v.GetInt("JWT_EXPIRY_MIN")) * time.Minute
			signed, err := token.NewService(secret, expiry).GenerateToken(v.GetString("subject"), v.GetString("role"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}

	cmd.Flags().String("secret", "", "HMAC secret (defaults to $JWT_SECRET_KEY)")
	cmd.Flags().String("subject", "operator", "token subject")
	cmd.Flags().String("role", token.RoleAdmin, "role claim")
	cmd.Flags().Int("expiry-min", 60, "token lifetime in minutes (defaults to $JWT_EXPIRY_MIN)")

	_ = v.BindPFlag("JWT_SECRET_KEY", cmd.Flags().Lookup("secret"))
	_ = v.BindPFlag("JWT_EXPIRY_MIN", cmd.Flags().Lookup("expiry-min"))
	_ = v.BindPFlag("subject", cmd.Flags().Lookup("subject"))
	_ = v.BindPFlag("role", cmd.Flags().Lookup("role"))

	return cmd
}
