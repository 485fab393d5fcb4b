package main

import (
	"fmt"
	"os"

	"go-pos/internal/app"
	"go-pos/internal/config"
	"go-pos/internal/shared/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "seed",
	Short:         "Provision permissions, the superadmin account and session tokens",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.App)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(permissionsCmd, superadminCmd, tokenCmd)
}

// openStore connects the configured store. Seeding the in-memory store is
// pointless outside the API process, so it is refused.
func openStore() (*app.Infra, error) {
	if cfg.App.Store != config.StorePostgres {
		return nil, fmt.Errorf("seeding needs APP_STORE=%s", config.StorePostgres)
	}
	return app.Open(cfg, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
