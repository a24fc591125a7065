// Package schema defines the data model shared across the streetrisk pipeline:
// the immutable inputs (segments, incidents), the ephemeral rows derived during
// a run (assignments, feature rows), and the persisted risk results.
package schema

import "time"

// Segment is a discrete unit of street geometry with a stable identifier.
// Rows come from the street_segments table and are never mutated here.
type Segment struct {
	UnitID    string   // Stable identifier, primary key upstream
	Street    string   // Street name (onstreet)
	Length    *float64 // Segment length in meters; nil when unknown
	Latitude  float64  // Midpoint latitude in degrees
	Longitude float64  // Midpoint longitude in degrees
}

// Incident is a single recorded crime event with location and time.
// Only rows with usable coordinates and a parseable offense date survive
// the fetch filters.
type Incident struct {
	ReportNumber string    // Report identifier from crime_reports
	OffenseDate  time.Time // Offense timestamp as stored (naive local time)
	Latitude     float64   // Blurred incident latitude in degrees
	Longitude    float64   // Blurred incident longitude in degrees
}

// Assignment maps one incident to its nearest segment with temporal tags.
// Assignments exist only within a pipeline run and are never persisted.
type Assignment struct {
	UnitID   string // Nearest segment identifier
	Night    bool   // Offense hour within the night window
	Recent   bool   // Offense within the recent window
	Previous bool   // Offense within the previous window (lookback minus recent)
}

// FeatureRow holds the engineered features for one segment. Every segment in
// the input set gets exactly one row, zero-filled when no incidents mapped
// to it.
type FeatureRow struct {
	UnitID            string
	Street            string
	Latitude          float64
	Longitude         float64
	Incidents         int     // Incident count within the lookback window
	NightIncidents    int     // Incidents tagged as night
	RecentIncidents   int     // Incidents within the recent window
	PreviousIncidents int     // Incidents within the previous window
	EffectiveLength   float64 // Length clamped to MinEffectiveLength, defaulted when missing
	IncidentDensity   float64 // Incidents / EffectiveLength
	NightFraction     float64 // NightIncidents / Incidents, 0 when Incidents is 0
	TrendRatio        float64 // (Recent+1)/(Previous+1), Laplace-smoothed
}

// RiskResult is one persisted row of the street_segment_risk table.
type RiskResult struct {
	UnitID          string
	ClusterID       int       // Internal partition id; ordering is carried by RiskLabel
	RiskLabel       RiskLabel // Ordered tier derived from cluster density ordering
	RiskScore       float64   // Min-max normalized incident density in [0,1]
	IncidentDensity float64
	NightFraction   float64
	Incidents       int    // Incident count within the lookback window
	ModelVersion    string // Opaque tag identifying the scoring-logic revision
	Summary         string // Operator-facing explanation string
	UpdatedAt       time.Time
}

// ScoredSegment pairs a segment's midpoint with its stored risk row. Used for
// route scoring, where query points map to the nearest scored segment.
type ScoredSegment struct {
	UnitID    string
	Street    string
	Latitude  float64
	Longitude float64
	RiskScore float64
	RiskLabel RiskLabel
}

// RouteRisk summarizes risk along a decoded polyline.
type RouteRisk struct {
	Points        int       // Decoded polyline points
	Matched       int       // Points that resolved to a scored segment
	AverageScore  float64   // Mean risk score across matched points
	DominantLabel RiskLabel // Most common label among matched points
}

// RunReport captures per-step row counts for one pipeline run.
type RunReport struct {
	Segments  int
	Incidents int
	Assigned  int
	Features  int
	Persisted int
	Skipped   bool // True when empty input made the run exit without writing
	Duration  time.Duration
}
