package core

import "github.com/huangsam/streetrisk/schema"

// segmentCounts accumulates assignment tallies for a single segment.
type segmentCounts struct {
	incidents int
	night     int
	recent    int
	previous  int
}

// BuildFeatures aggregates assignments per segment and left-joins the tallies
// onto the full segment set: every input segment yields exactly one row, with
// zero-filled counts when nothing mapped to it.
func BuildFeatures(segments []schema.Segment, assignments []schema.Assignment) []schema.FeatureRow {
	counts := make(map[string]*segmentCounts, len(segments))
	for _, a := range assignments {
		c := counts[a.UnitID]
		if c == nil {
			c = &segmentCounts{}
			counts[a.UnitID] = c
		}
		c.incidents++
		if a.Night {
			c.night++
		}
		if a.Recent {
			c.recent++
		}
		if a.Previous {
			c.previous++
		}
	}

	rows := make([]schema.FeatureRow, 0, len(segments))
	for _, seg := range segments {
		row := schema.FeatureRow{
			UnitID:          seg.UnitID,
			Street:          seg.Street,
			Latitude:        seg.Latitude,
			Longitude:       seg.Longitude,
			EffectiveLength: effectiveLength(seg.Length),
			TrendRatio:      1.0,
		}
		if c := counts[seg.UnitID]; c != nil {
			row.Incidents = c.incidents
			row.NightIncidents = c.night
			row.RecentIncidents = c.recent
			row.PreviousIncidents = c.previous
		}

		row.IncidentDensity = float64(row.Incidents) / row.EffectiveLength
		if row.Incidents > 0 {
			row.NightFraction = float64(row.NightIncidents) / float64(row.Incidents)
		}
		// Laplace smoothing keeps the ratio defined and dampens noise for
		// low-count segments.
		row.TrendRatio = float64(row.RecentIncidents+1) / float64(row.PreviousIncidents+1)

		rows = append(rows, row)
	}
	return rows
}

// effectiveLength guards density against missing or near-zero lengths.
func effectiveLength(length *float64) float64 {
	value := schema.DefaultSegmentLength
	if length != nil {
		value = *length
	}
	return max(value, schema.MinEffectiveLength)
}
