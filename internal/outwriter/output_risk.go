package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// DateTimeFormat is the timestamp layout used in table and CSV output.
const DateTimeFormat = "2006-01-02 15:04:05"

// WriteRiskResults outputs scored segments, dispatching based on the output
// format configured.
func WriteRiskResults(results []schema.RiskResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeRiskJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeRiskCSVResults(results, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRiskTable(results, cfg, w)
		}, "Wrote table")
	}
	return nil
}

// writeRiskJSONResults handles opening the file and calling the JSON writer.
func writeRiskJSONResults(results []schema.RiskResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForRisk(w, results)
	}, "Wrote JSON")
}

// writeRiskCSVResults handles opening the file and calling the CSV writer.
func writeRiskCSVResults(results []schema.RiskResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"rank",
			"unitid",
			"risk_score",
			"risk_label",
			"incident_density",
			"night_fraction",
			"last_90d_incidents",
			"model_version",
			"summary",
			"updated_at",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForRisk(csvWriter, results)
		})
	}, "Wrote CSV")
}

// writeRiskTable generates and writes the human-readable table.
func writeRiskTable(results []schema.RiskResult, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Segment", "Score", "Label", "Density", "Night", "Incidents", "Summary"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	summaryWidth := GetMaxSummaryWidth(cfg)
	var data [][]string
	for i, r := range results {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.UnitID,
			fmtScore(r.RiskScore),
			contract.GetColorLabel(r.RiskLabel, cfg.UseColors),
			fmtDensity(r.IncidentDensity),
			fmtPercent(r.NightFraction),
			strconv.Itoa(r.Incidents),
			truncateText(r.Summary, summaryWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d segments (model: %s)\n", len(results), cfg.ModelVersion); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForRisk writes the scored segments in CSV format.
func writeCSVResultsForRisk(w *csv.Writer, results []schema.RiskResult) error {
	for i, r := range results {
		rec := []string{
			strconv.Itoa(i + 1),
			r.UnitID,
			fmtScore(r.RiskScore),
			string(r.RiskLabel),
			fmtDensity(r.IncidentDensity),
			fmtScore(r.NightFraction),
			strconv.Itoa(r.Incidents),
			r.ModelVersion,
			r.Summary,
			r.UpdatedAt.Format(DateTimeFormat),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForRisk writes the scored segments in JSON format.
func writeJSONResultsForRisk(w io.Writer, results []schema.RiskResult) error {
	type JSONRiskResult struct {
		Rank            int       `json:"rank"`
		UnitID          string    `json:"unitid"`
		ClusterID       int       `json:"cluster_id"`
		RiskLabel       string    `json:"risk_label"`
		RiskScore       float64   `json:"risk_score"`
		IncidentDensity float64   `json:"incident_density"`
		NightFraction   float64   `json:"night_fraction"`
		Incidents       int       `json:"last_90d_incidents"`
		ModelVersion    string    `json:"model_version"`
		Summary         string    `json:"summary"`
		UpdatedAt       time.Time `json:"updated_at"`
	}

	output := make([]JSONRiskResult, len(results))
	for i, r := range results {
		output[i] = JSONRiskResult{
			Rank:            i + 1,
			UnitID:          r.UnitID,
			ClusterID:       r.ClusterID,
			RiskLabel:       string(r.RiskLabel),
			RiskScore:       r.RiskScore,
			IncidentDensity: r.IncidentDensity,
			NightFraction:   r.NightFraction,
			Incidents:       r.Incidents,
			ModelVersion:    r.ModelVersion,
			Summary:         r.Summary,
			UpdatedAt:       r.UpdatedAt,
		}
	}

	return writeJSON(w, output)
}
