package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/schema"
)

// Pipeline sequences one full scoring run: fetch segments and incidents,
// assign, build features, cluster, persist. Single-threaded and synchronous;
// a hard failure at any step aborts the run with nothing written.
type Pipeline struct {
	cfg       *contract.Config
	segments  contract.SegmentSource
	incidents contract.IncidentSource
	risks     contract.RiskStore
	now       func() time.Time
}

// NewPipeline wires a pipeline from its collaborators. The clock defaults to
// UTC wall time; tests may override it with WithClock.
func NewPipeline(cfg *contract.Config, segments contract.SegmentSource, incidents contract.IncidentSource, risks contract.RiskStore) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		segments:  segments,
		incidents: incidents,
		risks:     risks,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the pipeline's notion of "now".
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Run executes one scoring run. Empty input after filtering is a valid,
// inert outcome: the run logs, skips clustering, and exits without writing.
func (p *Pipeline) Run(ctx context.Context) (*schema.RunReport, error) {
	start := time.Now()
	now := p.now()
	report := &schema.RunReport{}

	contract.LogStep("Starting segment risk clustering (lookback=%dd, clusters=%d, model=%s)",
		p.cfg.LookbackDays, p.cfg.Clusters, p.cfg.ModelVersion)

	segments, err := p.segments.FetchSegments(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch segments: %w", err)
	}
	report.Segments = len(segments)
	contract.LogStep("Loaded %d street segments", len(segments))

	windowStart := now.AddDate(0, 0, -p.cfg.LookbackDays)
	fetched, err := p.incidents.FetchIncidents(ctx, windowStart)
	if err != nil {
		return nil, fmt.Errorf("fetch incidents: %w", err)
	}
	incidents := filterUsable(fetched)
	report.Incidents = len(incidents)
	contract.LogStep("Loaded %d crime incidents since %s", len(incidents), windowStart.Format("2006-01-02"))

	assignments := AssignIncidents(segments, incidents, p.cfg, now)
	report.Assigned = len(assignments)
	contract.LogStep("Mapped %d incidents to %d segments", len(assignments), distinctSegments(assignments))

	features := BuildFeatures(segments, assignments)
	report.Features = len(features)
	if len(features) == 0 {
		contract.LogStep("No features computed; skipping clustering")
		report.Skipped = true
		report.Duration = time.Since(start)
		return report, nil
	}

	results := ClusterRisk(features, p.cfg, now)

	if err := p.risks.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure risk schema: %w", err)
	}
	if err := p.risks.UpsertRisk(ctx, results); err != nil {
		return nil, fmt.Errorf("persist risk results: %w", err)
	}
	report.Persisted = len(results)
	contract.LogStep("Persisted risk scores for %d segments", len(results))

	report.Duration = time.Since(start)
	return report, nil
}

// filterUsable drops malformed incident rows that slipped past the fetch
// query: missing timestamps or out-of-range coordinates.
func filterUsable(incidents []schema.Incident) []schema.Incident {
	usable := incidents[:0:0]
	for _, inc := range incidents {
		if inc.OffenseDate.IsZero() {
			continue
		}
		if inc.Latitude < -90 || inc.Latitude > 90 || inc.Longitude < -180 || inc.Longitude > 180 {
			continue
		}
		usable = append(usable, inc)
	}
	return usable
}

func distinctSegments(assignments []schema.Assignment) int {
	seen := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		seen[a.UnitID] = struct{}{}
	}
	return len(seen)
}
