package cmd

import (
	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// migrateCmd runs database schema migrations.
//
// Note: migrate uses the shared setup without opening a store first so
// migrations can run against a fresh database.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the relational store.

Migrations allow:
- Creating the segment, report and risk tables on a fresh database
- Upgrading to new schema versions when streetrisk is updated
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  streetrisk migrate

  # Migrate to specific version
  streetrisk migrate --target-version 1

  # Rollback everything
  streetrisk migrate --target-version 0`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.Migrate(cfg.Backend, cfg.DBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
