package core

import (
	"testing"
	"time"

	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		ModelVersion: contract.DefaultModelVersion,
		LookbackDays: contract.DefaultLookbackDays,
		RecentDays:   contract.DefaultRecentDays,
		Clusters:     contract.DefaultClusters,
		Restarts:     contract.DefaultRestarts,
		Seed:         contract.DefaultSeed,
	}
}

func floatPtr(v float64) *float64 { return &v }

// TestIsNightHour covers the 22:00-05:59 night window boundaries.
func TestIsNightHour(t *testing.T) {
	tests := []struct {
		hour  int
		night bool
	}{
		{0, true},
		{3, true},
		{5, true},
		{6, false},
		{12, false},
		{21, false},
		{22, true},
		{23, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.night, isNightHour(tt.hour), "hour %d", tt.hour)
	}
}

// TestAssignIncidentsNearest verifies each incident maps to the closest
// segment midpoint.
func TestAssignIncidentsNearest(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	segments := []schema.Segment{
		{UnitID: "S1", Latitude: 47.60, Longitude: -122.30},
		{UnitID: "S2", Latitude: 47.70, Longitude: -122.40},
	}
	incidents := []schema.Incident{
		{ReportNumber: "R1", OffenseDate: now.AddDate(0, 0, -1), Latitude: 47.601, Longitude: -122.301},
		{ReportNumber: "R2", OffenseDate: now.AddDate(0, 0, -1), Latitude: 47.699, Longitude: -122.399},
	}

	assignments := AssignIncidents(segments, incidents, testConfig(), now)
	require.Len(t, assignments, 2)
	assert.Equal(t, "S1", assignments[0].UnitID)
	assert.Equal(t, "S2", assignments[1].UnitID)
}

// TestAssignIncidentsTemporalTags verifies night/recent/previous bucketing
// against a fixed clock.
func TestAssignIncidentsTemporalTags(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	segments := []schema.Segment{{UnitID: "S1", Latitude: 47.6, Longitude: -122.3}}

	tests := []struct {
		name     string
		offense  time.Time
		night    bool
		recent   bool
		previous bool
	}{
		{
			name:    "night incident yesterday",
			offense: time.Date(2024, 6, 14, 23, 0, 0, 0, time.UTC),
			night:   true,
			recent:  true,
		},
		{
			name:    "daytime incident yesterday",
			offense: time.Date(2024, 6, 14, 14, 0, 0, 0, time.UTC),
			recent:  true,
		},
		{
			name:     "previous window incident",
			offense:  now.AddDate(0, 0, -45),
			previous: true,
		},
		{
			name:    "older than lookback",
			offense: now.AddDate(0, 0, -120),
		},
		{
			name:    "exactly at recent cutoff counts as recent",
			offense: now.AddDate(0, 0, -30),
			recent:  true,
		},
		{
			name:     "exactly at lookback cutoff counts as previous",
			offense:  now.AddDate(0, 0, -90),
			previous: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			incidents := []schema.Incident{{ReportNumber: "R", OffenseDate: tt.offense, Latitude: 47.6, Longitude: -122.3}}
			assignments := AssignIncidents(segments, incidents, testConfig(), now)
			require.Len(t, assignments, 1)

			assert.Equal(t, tt.night, assignments[0].Night)
			assert.Equal(t, tt.recent, assignments[0].Recent)
			assert.Equal(t, tt.previous, assignments[0].Previous)
		})
	}
}

// TestAssignIncidentsEmptyInputs verifies both empty sides yield an empty
// assignment set.
func TestAssignIncidentsEmptyInputs(t *testing.T) {
	now := time.Now().UTC()
	segments := []schema.Segment{{UnitID: "S1", Latitude: 47.6, Longitude: -122.3}}
	incidents := []schema.Incident{{ReportNumber: "R", OffenseDate: now, Latitude: 47.6, Longitude: -122.3}}

	assert.Empty(t, AssignIncidents(nil, incidents, testConfig(), now))
	assert.Empty(t, AssignIncidents(segments, nil, testConfig(), now))
}
