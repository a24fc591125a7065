package cmd

import (
	"fmt"

	"github.com/huangsam/streetrisk/core"
	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/internal/outwriter"
	"github.com/huangsam/streetrisk/internal/spatial"
	"github.com/huangsam/streetrisk/internal/store"
	"github.com/spf13/cobra"
)

// routeCmd scores a polyline-encoded route against stored segment risk.
var routeCmd = &cobra.Command{
	Use:   "route <encoded-polyline>",
	Short: "Score a route against stored segment risk",
	Long: `Decode a Google-encoded polyline and score it against the last run.

Each decoded point maps to its nearest scored segment midpoint. The route
reports the mean risk score across matched points and the most common risk
label, with ties resolved toward the higher tier. A route with no matched
points reports UNKNOWN with score 0.

Examples:
  # Score a route from a navigation API response
  streetrisk route "_p~iF~ps|U_ulLnnqC"

  # Machine-readable result
  streetrisk route "_p~iF~ps|U_ulLnnqC" --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		points := spatial.DecodePolyline(args[0])
		if len(points) == 0 {
			contract.LogFatal("Failed to decode route", fmt.Errorf("polyline %q decoded to no points", args[0]))
		}

		db, err := store.Open(cfg.Backend, cfg.DBConnect)
		if err != nil {
			contract.LogFatal("Failed to open database", err)
		}
		defer func() { _ = db.Close() }()

		scored, err := store.NewRiskStore(db, cfg.Backend).ScoredSegments(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to read scored segments", err)
		}

		route := core.ScoreRoute(scored, points)
		if err := outwriter.WriteRouteRisk(route, cfg); err != nil {
			contract.LogFatal("Failed to write route risk", err)
		}
	},
}
