package cmd

import (
	"fmt"

	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/internal/parquet"
	"github.com/huangsam/streetrisk/internal/store"
	"github.com/spf13/cobra"
)

// exportCmd exports stored risk rows to a Parquet file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored risk rows to Parquet for analytics",
	Long: `Export every stored risk row to Parquet format.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all risk rows
  streetrisk export --output-file risk.parquet

  # Use with DuckDB for analysis
  streetrisk export --output-file risk.parquet
  duckdb -c "SELECT * FROM read_parquet('risk.parquet') ORDER BY risk_score DESC LIMIT 10"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Failed to export risk data", fmt.Errorf("--output-file is required"))
		}

		db, err := store.Open(cfg.Backend, cfg.DBConnect)
		if err != nil {
			contract.LogFatal("Failed to open database", err)
		}
		defer func() { _ = db.Close() }()

		results, err := store.NewRiskStore(db, cfg.Backend).AllRisk(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to read risk rows", err)
		}

		if err := parquet.WriteSegmentRiskParquet(parquet.ConvertRiskResults(results), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export risk data", err)
		}
		fmt.Printf("Exported %d risk rows to %s\n", len(results), cfg.OutputFile)
	},
}
