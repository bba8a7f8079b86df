package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iss-spotter/iss-spotter/internal/api/middleware"
	"github.com/iss-spotter/iss-spotter/internal/core/domain"
	"github.com/iss-spotter/iss-spotter/internal/pkg/config"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the lookup history endpoints",
		Long: `Signs an HS256 JWT with JWT_SECRET. Only the admin role can read
/v1/lookups.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if role != domain.RoleAdmin && role != domain.RoleViewer {
				return fmt.Errorf("unknown role %q", role)
			}

			loadDotEnv()
			cfg, err := config.LoadFrom(cmd.Context(), lookuper())
			if err != nil {
				return err
			}

			signed, err := middleware.SignToken(cfg.JWTSecret, subject, role, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "operator", "token subject")
	cmd.Flags().StringVar(&role, "role", domain.RoleAdmin, "role claim: admin or viewer")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "lifetime; 0 for no expiry")

	return cmd
}
