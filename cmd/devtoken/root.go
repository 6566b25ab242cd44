package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/focuszen/internal/config"
	"github.com/magabrotheeeer/focuszen/internal/lib/jwt"
	"github.com/magabrotheeeer/focuszen/internal/models"
)

var errNoSecret = errors.New("auth.jwt_secret_key is not set")

func newRootCmd(loadConfig func() *config.Config) *cobra.Command {
	var (
		identity models.Identity
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:          "devtoken",
		Short:        "Issue a signed identity token for local development",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig()
			if cfg.JWTSecretKey == "" {
				return errNoSecret
			}
			maker := jwt.NewMaker(cfg.JWTSecretKey, cfg.Issuer, cfg.Audience, ttl)
			token, err := maker.GenerateToken(identity)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&identity.Subject, "sub", "local|dev", "subject of the token")
	flags.StringVar(&identity.Email, "email", "dev@focuszen.local", "email claim")
	flags.StringVar(&identity.FirstName, "name", "Dev", "given name claim")
	flags.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
