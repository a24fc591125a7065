package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/schema"
)

// WriteRouteRisk outputs the aggregate risk for a decoded route.
func WriteRouteRisk(route schema.RouteRisk, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Points        int     `json:"points"`
				Matched       int     `json:"matched"`
				AverageScore  float64 `json:"average_score"`
				DominantLabel string  `json:"dominant_label"`
			}{
				Points:        route.Points,
				Matched:       route.Matched,
				AverageScore:  route.AverageScore,
				DominantLabel: string(route.DominantLabel),
			})
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRouteText(route, cfg, w)
		}, "Wrote route risk")
	}
}

func writeRouteText(route schema.RouteRisk, cfg *contract.Config, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Route risk: %s (score %s)\n",
		contract.GetColorLabel(route.DominantLabel, cfg.UseColors), fmtScore(route.AverageScore)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Matched %d of %d route points to scored segments\n",
		route.Matched, route.Points); err != nil {
		return err
	}
	return nil
}

// WriteRunReport prints the pipeline run summary.
func WriteRunReport(report schema.RunReport, cfg *contract.Config, w io.Writer) error {
	if report.Skipped {
		_, err := fmt.Fprintf(w, "No usable segments or incidents found. Nothing was written.\n")
		return err
	}
	_, err := fmt.Fprintf(w,
		"Scored %d segments from %d incidents (%d assigned) in %v. Backend: %s\n",
		report.Persisted, report.Incidents, report.Assigned, report.Duration, cfg.Backend)
	return err
}
