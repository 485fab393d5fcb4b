package main

import (
	"fmt"
	"time"

	"go-pos/internal/app"
	"go-pos/internal/auth"
	"go-pos/internal/rbac"

	"github.com/spf13/cobra"
)

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Insert every resource:action permission code that is missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		infra, err := openStore()
		if err != nil {
			return err
		}
		defer infra.Close()

		t := infra.Tables
		seeder := rbac.NewSeeder(infra.Deps.Tx, t.Roles, t.Permissions, t.Users)
		added, err := seeder.Permissions(cmd.Context(), app.Catalogue())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d permission codes added\n", added)
		return nil
	},
}

var superadminCmd = &cobra.Command{
	Use:   "superadmin",
	Short: "Create the superadmin role and assign it to SUPERADMIN_EMAIL",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		infra, err := openStore()
		if err != nil {
			return err
		}
		defer infra.Close()

		t := infra.Tables
		seeder := rbac.NewSeeder(infra.Deps.Tx, t.Roles, t.Permissions, t.Users)
		u, err := seeder.Superadmin(cmd.Context(), name, cfg.Seed.SuperadminEmail, cfg.Seed.SuperadminPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "superadmin %s (%s)\n", u.Email, u.ID)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <email>",
	Short: "Sign a session token for email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			ttl = cfg.JWT.TTL
		}

		token, err := auth.Issue(cfg.JWT.Secret, args[0], ttl, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	superadminCmd.Flags().String("name", "Superadmin", "display name of the account")
	tokenCmd.Flags().Duration("ttl", 0, "token lifetime (defaults to JWT_TTL)")
}
