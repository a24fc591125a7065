// Package core implements the risk-scoring pipeline: incident assignment,
// feature engineering, clustering, and the orchestrating run loop.
package core

import (
	"time"

	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/internal/spatial"
	"github.com/huangsam/streetrisk/schema"
)

// AssignIncidents maps every incident to its nearest segment by great-circle
// distance and tags it with temporal buckets evaluated against now. With zero
// segments or zero incidents the assignment set is empty, not an error.
func AssignIncidents(segments []schema.Segment, incidents []schema.Incident, cfg *contract.Config, now time.Time) []schema.Assignment {
	if len(segments) == 0 || len(incidents) == 0 {
		return nil
	}

	coords := make([]spatial.LatLng, len(segments))
	for i, seg := range segments {
		coords[i] = spatial.LatLng{Lat: seg.Latitude, Lng: seg.Longitude}
	}
	index := spatial.NewPointIndex(coords)

	recentCutoff := now.AddDate(0, 0, -cfg.RecentDays)
	previousCutoff := now.AddDate(0, 0, -cfg.LookbackDays)

	assignments := make([]schema.Assignment, 0, len(incidents))
	for _, inc := range incidents {
		nearest := index.Nearest(inc.Latitude, inc.Longitude)

		// Recency compares against UTC now while the night bucket reads the
		// hour as stored, matching the upstream ETL's timestamps.
		recent := !inc.OffenseDate.Before(recentCutoff)
		previous := !inc.OffenseDate.Before(previousCutoff) && inc.OffenseDate.Before(recentCutoff)

		assignments = append(assignments, schema.Assignment{
			UnitID:   segments[nearest].UnitID,
			Night:    isNightHour(inc.OffenseDate.Hour()),
			Recent:   recent,
			Previous: previous,
		})
	}
	return assignments
}

// isNightHour reports whether an hour of day falls in the 22:00-05:59 window.
func isNightHour(hour int) bool {
	return hour >= schema.NightStartHour || hour <= schema.NightEndHour
}
