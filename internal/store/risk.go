package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/schema"
)

// riskColumns is the column list shared by the upsert and read queries.
var riskColumns = []string{
	"unitid", "cluster_id", "risk_label", "risk_score",
	"incident_density", "night_fraction", "last_90d_incidents",
	"model_version", "summary", "updated_at",
}

// RiskStoreImpl implements the RiskStore interface on a SQL backend.
type RiskStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RiskStore = &RiskStoreImpl{} // Compile-time check

// NewRiskStore wraps a database handle as a risk store.
func NewRiskStore(db *sql.DB, backend schema.DatabaseBackend) *RiskStoreImpl {
	return &RiskStoreImpl{db: db, backend: backend}
}

// EnsureSchema creates the risk table if it does not exist. Safe to call on
// every run.
func (rs *RiskStoreImpl) EnsureSchema(ctx context.Context) error {
	if _, err := rs.db.ExecContext(ctx, getCreateRiskTableQuery(rs.backend)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", schema.RiskTable, err)
	}
	return nil
}

// getCreateRiskTableQuery returns the CREATE TABLE query for street_segment_risk.
func getCreateRiskTableQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				unitid VARCHAR(50) PRIMARY KEY,
				cluster_id INT NOT NULL,
				risk_label VARCHAR(20) NOT NULL,
				risk_score DOUBLE NOT NULL,
				incident_density DOUBLE NOT NULL,
				night_fraction DOUBLE NOT NULL,
				last_90d_incidents INT NOT NULL,
				model_version VARCHAR(50) NOT NULL,
				summary TEXT,
				updated_at DATETIME(6) NOT NULL,
				FOREIGN KEY (unitid) REFERENCES %s(unitid)
					ON UPDATE CASCADE ON DELETE CASCADE
			);
		`, schema.RiskTable, schema.SegmentsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				unitid VARCHAR(50) PRIMARY KEY,
				cluster_id INT NOT NULL,
				risk_label VARCHAR(20) NOT NULL,
				risk_score DOUBLE PRECISION NOT NULL,
				incident_density DOUBLE PRECISION NOT NULL,
				night_fraction DOUBLE PRECISION NOT NULL,
				last_90d_incidents INT NOT NULL,
				model_version VARCHAR(50) NOT NULL,
				summary TEXT,
				updated_at TIMESTAMPTZ NOT NULL,
				FOREIGN KEY (unitid) REFERENCES %s(unitid)
					ON UPDATE CASCADE ON DELETE CASCADE
			);
		`, schema.RiskTable, schema.SegmentsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				unitid TEXT PRIMARY KEY,
				cluster_id INTEGER NOT NULL,
				risk_label TEXT NOT NULL,
				risk_score REAL NOT NULL,
				incident_density REAL NOT NULL,
				night_fraction REAL NOT NULL,
				last_90d_incidents INTEGER NOT NULL,
				model_version TEXT NOT NULL,
				summary TEXT,
				updated_at TEXT NOT NULL,
				FOREIGN KEY (unitid) REFERENCES %s(unitid)
					ON UPDATE CASCADE ON DELETE CASCADE
			);
		`, schema.RiskTable, schema.SegmentsTable)
	}
}

// getUpsertRiskQuery returns the insert-or-overwrite statement for one risk row.
func getUpsertRiskQuery(backend schema.DatabaseBackend) string {
	columns := strings.Join(riskColumns, ", ")
	values := strings.Join(placeholders(backend, 1, len(riskColumns)), ", ")

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			INSERT INTO %s (%s) VALUES (%s)
			ON DUPLICATE KEY UPDATE
				cluster_id = VALUES(cluster_id),
				risk_label = VALUES(risk_label),
				risk_score = VALUES(risk_score),
				incident_density = VALUES(incident_density),
				night_fraction = VALUES(night_fraction),
				last_90d_incidents = VALUES(last_90d_incidents),
				model_version = VALUES(model_version),
				summary = VALUES(summary),
				updated_at = VALUES(updated_at)
		`, schema.RiskTable, columns, values)

	default: // SQLite and PostgreSQL share ON CONFLICT syntax
		return fmt.Sprintf(`
			INSERT INTO %s (%s) VALUES (%s)
			ON CONFLICT (unitid) DO UPDATE SET
				cluster_id = excluded.cluster_id,
				risk_label = excluded.risk_label,
				risk_score = excluded.risk_score,
				incident_density = excluded.incident_density,
				night_fraction = excluded.night_fraction,
				last_90d_incidents = excluded.last_90d_incidents,
				model_version = excluded.model_version,
				summary = excluded.summary,
				updated_at = excluded.updated_at
		`, schema.RiskTable, columns, values)
	}
}

// UpsertRisk writes one row per segment inside a single transaction. Existing
// rows keep their primary key and have every other field overwritten. A failed
// row rolls back the whole batch.
func (rs *RiskStoreImpl) UpsertRisk(ctx context.Context, results []schema.RiskResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := rs.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin risk upsert transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, getUpsertRiskQuery(rs.backend))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare risk upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range results {
		_, err := stmt.ExecContext(ctx,
			r.UnitID, r.ClusterID, string(r.RiskLabel), r.RiskScore,
			r.IncidentDensity, r.NightFraction, r.Incidents,
			r.ModelVersion, r.Summary, formatTime(r.UpdatedAt, rs.backend),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to upsert risk row for segment %s: %w", r.UnitID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit risk upsert: %w", err)
	}
	return nil
}

// TopRisk returns up to limit rows ordered by risk score descending.
func (rs *RiskStoreImpl) TopRisk(ctx context.Context, limit int) ([]schema.RiskResult, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		ORDER BY risk_score DESC, unitid ASC
		LIMIT %s
	`, strings.Join(riskColumns, ", "), schema.RiskTable, placeholders(rs.backend, 1, 1)[0])
	return rs.queryRisk(ctx, query, limit)
}

// AllRisk returns every stored risk row ordered by segment id.
func (rs *RiskStoreImpl) AllRisk(ctx context.Context) ([]schema.RiskResult, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		ORDER BY unitid ASC
	`, strings.Join(riskColumns, ", "), schema.RiskTable)
	return rs.queryRisk(ctx, query)
}

func (rs *RiskStoreImpl) queryRisk(ctx context.Context, query string, args ...any) ([]schema.RiskResult, error) {
	rows, err := rs.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RiskResult
	for rows.Next() {
		var r schema.RiskResult
		var label string

		switch rs.backend {
		case schema.SQLiteBackend:
			var updatedAtStr string
			if err := rows.Scan(&r.UnitID, &r.ClusterID, &label, &r.RiskScore,
				&r.IncidentDensity, &r.NightFraction, &r.Incidents,
				&r.ModelVersion, &r.Summary, &updatedAtStr); err != nil {
				return nil, fmt.Errorf("failed to scan risk row: %w", err)
			}
			updatedAt, err := parseStoredTime(updatedAtStr)
			if err != nil {
				return nil, err
			}
			r.UpdatedAt = updatedAt
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&r.UnitID, &r.ClusterID, &label, &r.RiskScore,
				&r.IncidentDensity, &r.NightFraction, &r.Incidents,
				&r.ModelVersion, &r.Summary, &r.UpdatedAt); err != nil {
				return nil, fmt.Errorf("failed to scan risk row: %w", err)
			}
		}

		r.RiskLabel = schema.RiskLabel(label)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating risk rows: %w", err)
	}

	return results, nil
}

// ScoredSegments joins risk rows with segment midpoints so callers can run
// spatial queries against stored scores.
func (rs *RiskStoreImpl) ScoredSegments(ctx context.Context) ([]schema.ScoredSegment, error) {
	query := fmt.Sprintf(`
		SELECT r.unitid, s.onstreet, s.gis_mid_y, s.gis_mid_x, r.risk_score, r.risk_label
		FROM %s r
		INNER JOIN %s s ON r.unitid = s.unitid
		WHERE s.gis_mid_x IS NOT NULL AND s.gis_mid_y IS NOT NULL
	`, schema.RiskTable, schema.SegmentsTable)

	rows, err := rs.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scored segments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var scored []schema.ScoredSegment
	for rows.Next() {
		var seg schema.ScoredSegment
		var street sql.NullString
		var label string
		if err := rows.Scan(&seg.UnitID, &street, &seg.Latitude, &seg.Longitude, &seg.RiskScore, &label); err != nil {
			return nil, fmt.Errorf("failed to scan scored segment: %w", err)
		}
		seg.Street = street.String
		seg.RiskLabel = schema.RiskLabel(label)
		scored = append(scored, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scored segments: %w", err)
	}

	return scored, nil
}
