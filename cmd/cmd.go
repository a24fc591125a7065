// Package cmd defines the command-line interface for streetrisk.
package cmd

import (
	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("model-version", contract.DefaultModelVersion, "Model version tag written to the risk rows")
	rootCmd.PersistentFlags().Int("lookback-days", contract.DefaultLookbackDays, "Trailing window of incident history in days")
	rootCmd.PersistentFlags().Int("recent-days", contract.DefaultRecentDays, "Recent sub-window for trend computation in days")
	rootCmd.PersistentFlags().IntP("clusters", "k", contract.DefaultClusters, "Number of risk clusters")
	rootCmd.PersistentFlags().Int("restarts", contract.DefaultRestarts, "Clustering restarts per run")
	rootCmd.PersistentFlags().Int64("seed", contract.DefaultSeed, "Clustering random seed")
	rootCmd.PersistentFlags().String("backend", string(schema.SQLiteBackend), "Database backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of migrateCmd to Viper
	migrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(migrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}
