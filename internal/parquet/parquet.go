// Package parquet provides data structures and functions for exporting
// segment risk data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/streetrisk/schema"
	"github.com/parquet-go/parquet-go"
)

// SegmentRisk represents one scored street segment.
// This struct maps to the street_segment_risk database table.
type SegmentRisk struct {
	// UnitID is the unique street segment identifier
	UnitID string `parquet:"unitid,snappy"`

	// ClusterID is the internal cluster partition id
	ClusterID int32 `parquet:"cluster_id,snappy"`

	// RiskLabel is the ordered risk tier (LOW through VERY_HIGH)
	RiskLabel string `parquet:"risk_label,snappy"`

	// RiskScore is the min-max normalized incident density in [0,1]
	RiskScore float64 `parquet:"risk_score,snappy"`

	// IncidentDensity is incidents per meter of effective segment length
	IncidentDensity float64 `parquet:"incident_density,snappy"`

	// NightFraction is the share of incidents during night hours
	NightFraction float64 `parquet:"night_fraction,snappy"`

	// Incidents is the incident count within the lookback window
	Incidents int32 `parquet:"last_90d_incidents,snappy"`

	// ModelVersion identifies the scoring-logic revision
	ModelVersion string `parquet:"model_version,snappy"`

	// Summary is the operator-facing explanation string
	Summary string `parquet:"summary,snappy"`

	// UpdatedAt is when the row was last written (stored as TIMESTAMP with nanosecond precision)
	UpdatedAt time.Time `parquet:"updated_at,snappy"`
}

// WriteSegmentRiskParquet writes a slice of SegmentRisk structs to a Parquet file.
func WriteSegmentRiskParquet(data []SegmentRisk, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the SegmentRisk struct tags
	writer := parquet.NewGenericWriter[SegmentRisk](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// ConvertRiskResults converts schema.RiskResult to SegmentRisk for Parquet export.
func ConvertRiskResults(results []schema.RiskResult) []SegmentRisk {
	converted := make([]SegmentRisk, len(results))
	for i, r := range results {
		converted[i] = SegmentRisk{
			UnitID:          r.UnitID,
			ClusterID:       int32(r.ClusterID),
			RiskLabel:       string(r.RiskLabel),
			RiskScore:       r.RiskScore,
			IncidentDensity: r.IncidentDensity,
			NightFraction:   r.NightFraction,
			Incidents:       int32(r.Incidents),
			ModelVersion:    r.ModelVersion,
			Summary:         r.Summary,
			UpdatedAt:       r.UpdatedAt,
		}
	}
	return converted
}
