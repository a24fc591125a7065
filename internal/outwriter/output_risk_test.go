package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOutputConfig() *contract.Config {
	return &contract.Config{
		ModelVersion: contract.DefaultModelVersion,
		Backend:      schema.SQLiteBackend,
		Output:       schema.TextOut,
		UseColors:    false,
		Width:        120,
	}
}

func sampleResults() []schema.RiskResult {
	updatedAt := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []schema.RiskResult{
		{
			UnitID:          "S1",
			ClusterID:       2,
			RiskLabel:       schema.HighRisk,
			RiskScore:       1.0,
			IncidentDensity: 0.12,
			NightFraction:   0.5,
			Incidents:       12,
			ModelVersion:    contract.DefaultModelVersion,
			Summary:         "12 incidents in 90d, night 50%, trend x1.50",
			UpdatedAt:       updatedAt,
		},
		{
			UnitID:       "S2",
			ClusterID:    0,
			RiskLabel:    schema.LowRisk,
			ModelVersion: contract.DefaultModelVersion,
			UpdatedAt:    updatedAt,
		},
	}
}

func TestWriteRiskTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := testOutputConfig()

	require.NoError(t, writeRiskTable(sampleResults(), cfg, &buf))

	out := buf.String()
	assert.Contains(t, out, "S1")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "1.0000")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Showing 2 segments")
	assert.Contains(t, out, contract.DefaultModelVersion)
}

func TestWriteCSVResultsForRisk(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVResultsForRisk(w, sampleResults()))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0][0])
	assert.Equal(t, "S1", records[0][1])
	assert.Equal(t, "HIGH", records[0][3])
	assert.Equal(t, "2024-06-01 00:00:00", records[0][9])
}

func TestWriteJSONResultsForRisk(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONResultsForRisk(&buf, sampleResults()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, float64(1), decoded[0]["rank"])
	assert.Equal(t, "S1", decoded[0]["unitid"])
	assert.Equal(t, "HIGH", decoded[0]["risk_label"])
	assert.Equal(t, "LOW", decoded[1]["risk_label"])
}

func TestWriteRouteText(t *testing.T) {
	var buf bytes.Buffer
	cfg := testOutputConfig()
	route := schema.RouteRisk{
		Points:        10,
		Matched:       8,
		AverageScore:  0.62,
		DominantLabel: schema.MediumRisk,
	}

	require.NoError(t, writeRouteText(route, cfg, &buf))
	out := buf.String()
	assert.Contains(t, out, "MEDIUM")
	assert.Contains(t, out, "0.6200")
	assert.Contains(t, out, "Matched 8 of 10")
}

func TestWriteRunReport(t *testing.T) {
	cfg := testOutputConfig()

	t.Run("scored run", func(t *testing.T) {
		var buf bytes.Buffer
		report := schema.RunReport{
			Segments:  100,
			Incidents: 50,
			Assigned:  48,
			Features:  100,
			Persisted: 100,
			Duration:  2 * time.Second,
		}
		require.NoError(t, WriteRunReport(report, cfg, &buf))
		assert.Contains(t, buf.String(), "Scored 100 segments from 50 incidents")
	})

	t.Run("skipped run", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRunReport(schema.RunReport{Skipped: true}, cfg, &buf))
		assert.Contains(t, buf.String(), "Nothing was written")
	})
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"shorter than width", "abc", 10, "abc"},
		{"exactly width", "abcde", 5, "abcde"},
		{"truncated", "abcdefghij", 8, "abcde..."},
		{"tiny width", "abcdefghij", 2, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateText(tt.text, tt.width))
		})
	}
}
