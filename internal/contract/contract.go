// Package contract holds the configuration surface and the capability
// interfaces that the core pipeline depends on. The pipeline never talks to a
// storage engine directly; it only consumes these contracts.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/streetrisk/schema"
)

// SegmentSource fetches the full street-segment set. Rows with null midpoint
// coordinates are excluded by the implementation's query.
type SegmentSource interface {
	FetchSegments(ctx context.Context) ([]schema.Segment, error)
}

// IncidentSource fetches incidents with an offense date at or after
// windowStart. Rows with null coordinates or null offense dates are excluded
// by the implementation's query.
type IncidentSource interface {
	FetchIncidents(ctx context.Context, windowStart time.Time) ([]schema.Incident, error)
}

// RiskStore persists and reads back per-segment risk rows.
type RiskStore interface {
	// EnsureSchema creates the risk table if it does not exist. Idempotent.
	EnsureSchema(ctx context.Context) error

	// UpsertRisk writes one row per segment inside a single transaction:
	// insert when absent, otherwise overwrite every non-key field. The batch
	// commits fully or not at all.
	UpsertRisk(ctx context.Context, results []schema.RiskResult) error

	// TopRisk returns up to limit rows ordered by risk score descending.
	TopRisk(ctx context.Context, limit int) ([]schema.RiskResult, error)

	// AllRisk returns every stored risk row.
	AllRisk(ctx context.Context) ([]schema.RiskResult, error)

	// ScoredSegments joins risk rows with segment midpoints for spatial
	// queries against stored scores.
	ScoredSegments(ctx context.Context) ([]schema.ScoredSegment, error)
}
