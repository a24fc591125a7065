package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/schema"
)

// SegmentSource reads the street-segment set produced by the upstream
// street-network ingestion.
type SegmentSource struct {
	db *sql.DB
}

var _ contract.SegmentSource = &SegmentSource{} // Compile-time check

// NewSegmentSource wraps a database handle as a segment source.
func NewSegmentSource(db *sql.DB) *SegmentSource {
	return &SegmentSource{db: db}
}

// FetchSegments returns all segments that have midpoint coordinates.
// Rows with null midpoints are excluded here rather than downstream.
func (s *SegmentSource) FetchSegments(ctx context.Context) ([]schema.Segment, error) {
	query := fmt.Sprintf(`
		SELECT unitid, onstreet, seglength, gis_mid_y, gis_mid_x
		FROM %s
		WHERE gis_mid_x IS NOT NULL AND gis_mid_y IS NOT NULL
	`, schema.SegmentsTable)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query street segments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var segments []schema.Segment
	for rows.Next() {
		var seg schema.Segment
		var street sql.NullString
		var length sql.NullFloat64
		if err := rows.Scan(&seg.UnitID, &street, &length, &seg.Latitude, &seg.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan street segment: %w", err)
		}
		seg.Street = street.String
		if length.Valid {
			value := length.Float64
			seg.Length = &value
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating street segments: %w", err)
	}

	return segments, nil
}

// IncidentSource reads crime incidents joined across the reports and
// offenses tables populated by the upstream crime ETL.
type IncidentSource struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.IncidentSource = &IncidentSource{} // Compile-time check

// NewIncidentSource wraps a database handle as an incident source.
func NewIncidentSource(db *sql.DB, backend schema.DatabaseBackend) *IncidentSource {
	return &IncidentSource{db: db, backend: backend}
}

// FetchIncidents returns incidents with an offense date at or after
// windowStart. Rows with null coordinates or null offense dates are excluded
// by the query itself.
func (s *IncidentSource) FetchIncidents(ctx context.Context, windowStart time.Time) ([]schema.Incident, error) {
	query := fmt.Sprintf(`
		SELECT cr.report_number, ro.offense_date, cr.blurred_latitude, cr.blurred_longitude
		FROM %s ro
		INNER JOIN %s cr ON ro.report_number = cr.report_number
		WHERE cr.blurred_latitude IS NOT NULL
		  AND cr.blurred_longitude IS NOT NULL
		  AND ro.offense_date IS NOT NULL
		  AND ro.offense_date >= %s
	`, schema.OffensesTable, schema.ReportsTable, placeholders(s.backend, 1, 1)[0])

	rows, err := s.db.QueryContext(ctx, query, formatTime(windowStart, s.backend))
	if err != nil {
		return nil, fmt.Errorf("failed to query crime incidents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var incidents []schema.Incident
	for rows.Next() {
		var inc schema.Incident

		switch s.backend {
		case schema.SQLiteBackend:
			var offenseDateStr string
			if err := rows.Scan(&inc.ReportNumber, &offenseDateStr, &inc.Latitude, &inc.Longitude); err != nil {
				return nil, fmt.Errorf("failed to scan crime incident: %w", err)
			}
			offenseDate, err := parseStoredTime(offenseDateStr)
			if err != nil {
				return nil, err
			}
			inc.OffenseDate = offenseDate
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&inc.ReportNumber, &inc.OffenseDate, &inc.Latitude, &inc.Longitude); err != nil {
				return nil, fmt.Errorf("failed to scan crime incident: %w", err)
			}
		}

		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating crime incidents: %w", err)
	}

	return incidents, nil
}
