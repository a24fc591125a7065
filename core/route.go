package core

import (
	"github.com/huangsam/streetrisk/internal/spatial"
	"github.com/huangsam/streetrisk/schema"
)

// ScoreRoute samples stored risk along a path: each point maps to its nearest
// scored segment, and the route reports the mean risk score and the most
// common label across matched points. A path with no matches scores 0.0 with
// an UNKNOWN label.
func ScoreRoute(scored []schema.ScoredSegment, points []spatial.LatLng) schema.RouteRisk {
	route := schema.RouteRisk{
		Points:        len(points),
		DominantLabel: schema.UnknownRisk,
	}
	if len(points) == 0 || len(scored) == 0 {
		return route
	}

	coords := make([]spatial.LatLng, len(scored))
	for i, s := range scored {
		coords[i] = spatial.LatLng{Lat: s.Latitude, Lng: s.Longitude}
	}
	index := spatial.NewPointIndex(coords)

	var total float64
	labelCounts := make(map[schema.RiskLabel]int)
	for _, p := range points {
		nearest := index.Nearest(p.Lat, p.Lng)
		if nearest < 0 {
			continue
		}
		route.Matched++
		total += scored[nearest].RiskScore
		labelCounts[scored[nearest].RiskLabel]++
	}
	if route.Matched == 0 {
		return route
	}

	route.AverageScore = total / float64(route.Matched)
	route.DominantLabel = dominantLabel(labelCounts)
	return route
}

// dominantLabel picks the most frequent label; count ties resolve toward the
// higher tier so a route never under-reports.
func dominantLabel(counts map[schema.RiskLabel]int) schema.RiskLabel {
	best := schema.UnknownRisk
	bestCount := 0
	for _, label := range schema.LabelOrder {
		if counts[label] >= bestCount && counts[label] > 0 {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}
