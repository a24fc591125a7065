//go:build basic || database

package integration

import (
	"testing"
	"time"

	"github.com/huangsam/streetrisk/internal/store"
	"github.com/huangsam/streetrisk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCrimeData loads a small cluster of segments and incidents so a scoring
// run has something to work with. One segment gets a burst of recent night
// incidents, one gets a single daytime incident, one stays clean. Uses ?
// placeholders, so it covers the sqlite and mysql backends.
func seedCrimeData(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	db, err := store.Open(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	segments := []struct {
		unitID   string
		street   string
		lat, lng float64
	}{
		{"SEG-1", "PINE ST", 47.6100, -122.3300},
		{"SEG-2", "1ST AVE", 47.6200, -122.3400},
		{"SEG-3", "CEDAR ST", 47.6300, -122.3500},
	}
	for _, s := range segments {
		_, err := db.Exec(
			"INSERT INTO street_segments (unitid, onstreet, seglength, gis_mid_y, gis_mid_x) VALUES (?, ?, ?, ?, ?)",
			s.unitID, s.street, 120.0, s.lat, s.lng)
		require.NoError(t, err)
	}

	incidents := []struct {
		report   string
		offense  time.Time
		lat, lng float64
	}{
		{"R-1", daysAgoAt(2, 23), 47.6101, -122.3301},
		{"R-2", daysAgoAt(5, 23), 47.6099, -122.3299},
		{"R-3", daysAgoAt(9, 2), 47.6102, -122.3302},
		{"R-4", daysAgoAt(20, 14), 47.6201, -122.3401},
	}
	for _, inc := range incidents {
		_, err := db.Exec(
			"INSERT INTO crime_reports (report_number, blurred_latitude, blurred_longitude) VALUES (?, ?, ?)",
			inc.report, inc.lat, inc.lng)
		require.NoError(t, err)
		_, err = db.Exec(
			"INSERT INTO report_offenses (offense_id, report_number, offense_date) VALUES (?, ?, ?)",
			inc.report+"-1", inc.report, formatOffense(backend, inc.offense))
		require.NoError(t, err)
	}
}

// formatOffense matches how each backend stores timestamps. SQLite gets a
// fixed-width RFC3339 string, drivers with native time support get time.Time.
func formatOffense(backend schema.DatabaseBackend, ts time.Time) any {
	if backend == schema.SQLiteBackend {
		return ts.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
	}
	return ts
}

// daysAgoAt returns a UTC timestamp the given number of days in the past,
// pinned to a specific hour so night tagging is deterministic.
func daysAgoAt(days, hour int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, -days)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

// verifyRiskRows checks that the scoring run wrote one row per segment with a
// sane score range and the busy segment ranked highest.
func verifyRiskRows(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	db, err := store.Open(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM street_segment_risk").Scan(&count))
	assert.Equal(t, 3, count)

	rows, err := db.Query("SELECT unitid, risk_score FROM street_segment_risk ORDER BY risk_score DESC")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var topUnit string
	var topScore float64
	require.True(t, rows.Next())
	require.NoError(t, rows.Scan(&topUnit, &topScore))
	assert.Equal(t, "SEG-1", topUnit)
	assert.InDelta(t, 1.0, topScore, 1e-9)

	for rows.Next() {
		var unitID string
		var score float64
		require.NoError(t, rows.Scan(&unitID, &score))
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
	require.NoError(t, rows.Err())
}
