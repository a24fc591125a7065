package cmd

import (
	"os"

	"github.com/huangsam/streetrisk/core"
	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/internal/outwriter"
	"github.com/huangsam/streetrisk/internal/store"
	"github.com/spf13/cobra"
)

// runCmd executes one full scoring run against the configured database.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Score every street segment from recent incident history",
	Long: `Run the full scoring pipeline once.

The pipeline:
1. Loads street segments and recent crime incidents from the database
2. Maps each incident to its nearest segment midpoint
3. Builds per-segment density, night and trend features
4. Clusters the features into ordered risk tiers
5. Writes one risk row per segment, replacing any previous run

Re-running against unchanged data produces the same scores and labels;
only the updated_at timestamps move.

Examples:
  # Score against the default SQLite database
  streetrisk run

  # Score against MySQL with a shorter window
  streetrisk run --backend mysql --db-connect "user:pass@tcp(localhost:3306)/crime" --lookback-days 60`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		db, err := store.Open(cfg.Backend, cfg.DBConnect)
		if err != nil {
			contract.LogFatal("Failed to open database", err)
		}
		defer func() { _ = db.Close() }()

		pipeline := core.NewPipeline(cfg,
			store.NewSegmentSource(db),
			store.NewIncidentSource(db, cfg.Backend),
			store.NewRiskStore(db, cfg.Backend))

		report, err := pipeline.Run(rootCtx)
		if err != nil {
			contract.LogFatal("Scoring run failed", err)
		}
		if err := outwriter.WriteRunReport(*report, cfg, os.Stdout); err != nil {
			contract.LogFatal("Failed to write run report", err)
		}
	},
}
