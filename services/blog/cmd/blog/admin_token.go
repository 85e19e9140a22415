package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"librarysite/internal/admintoken"
	"librarysite/pkg/auth"
)

var errInvalidCredentials = errors.New("invalid username or password")

// NewAdminTokenCommand issues a bearer token for the /admin routes.
// Only staff and superuser accounts qualify.
func NewAdminTokenCommand(configFile *string) *cobra.Command {
	var (
		username string
		password string
	)
	cmd := &cobra.Command{
		Use:   "admin-token",
		Short: "Issue an admin API token for a staff account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, _, err := bootstrap(cmd, *configFile)
			if err != nil {
				return err
			}
			defer st.Close()

			if cfg.AdminJWTSecret == "" {
				return errors.New("adminJwtSecret is not configured (set BLOG_ADMIN_JWT_SECRET)")
			}
			ttl, err := cfg.AdminTTL()
			if err != nil {
				return err
			}
			signer, err := admintoken.NewSigner(cfg.AdminJWTSecret, ttl)
			if err != nil {
				return err
			}

			user, ok, err := st.GetUserByUsername(strings.TrimSpace(username))
			if err != nil {
				return fmt.Errorf("lookup user: %w", err)
			}
			if !ok || !auth.CheckPassword(password, user.PasswordHash) {
				return errInvalidCredentials
			}
			if !user.IsStaff && !user.IsSuperuser {
				return fmt.Errorf("user %q is not staff", user.Username)
			}
			token, expires, err := signer.Sign(user)
			if err != nil {
				return err
			}
			cmd.Println(token)
			cmd.PrintErrf("expires %s\n", expires.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "staff username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
