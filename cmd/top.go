package cmd

import (
	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/internal/outwriter"
	"github.com/huangsam/streetrisk/internal/store"
	"github.com/spf13/cobra"
)

// topCmd lists the highest-risk segments from the last scoring run.
var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List the highest-risk street segments",
	Long: `Show stored risk rows ordered by risk score descending.

Reads the results of the last scoring run; it does not re-score.

Examples:
  # Show the top 25 segments (default limit)
  streetrisk top

  # Export the top 100 as CSV
  streetrisk top --limit 100 --output csv --output-file top.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		db, err := store.Open(cfg.Backend, cfg.DBConnect)
		if err != nil {
			contract.LogFatal("Failed to open database", err)
		}
		defer func() { _ = db.Close() }()

		results, err := store.NewRiskStore(db, cfg.Backend).TopRisk(rootCtx, cfg.ResultLimit)
		if err != nil {
			contract.LogFatal("Failed to read risk rows", err)
		}
		if err := outwriter.WriteRiskResults(results, cfg); err != nil {
			contract.LogFatal("Failed to write results", err)
		}
	},
}
