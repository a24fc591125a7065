package spatial

import (
	"math"
	"sort"

	"github.com/golang/geo/s2"
)

// PointIndex answers nearest-point queries under great-circle distance over a
// fixed set of reference coordinates. Points are projected to unit-sphere
// vectors and stored in a static k-d tree: chord distance is monotone in
// great-circle distance, so the chord-nearest point is also the
// great-circle-nearest point. Build is O(N log N), queries are O(log N)
// expected. Ties resolve to the first candidate found in traversal order,
// which is stable for identical input.
type PointIndex struct {
	// entries is laid out in median order: the subtree covering [lo, hi)
	// has its split point at (lo+hi)/2.
	entries []indexEntry
}

type indexEntry struct {
	point s2.Point // unit vector on the sphere
	id    int      // position in the original coordinate slice
}

// NewPointIndex builds an index over the given reference coordinates.
// An empty coordinate set yields an index whose queries return -1.
func NewPointIndex(coords []LatLng) *PointIndex {
	entries := make([]indexEntry, len(coords))
	for i, c := range coords {
		entries[i] = indexEntry{
			point: s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lng)),
			id:    i,
		}
	}
	buildSubtree(entries, 0)
	return &PointIndex{entries: entries}
}

// buildSubtree arranges entries so the median of each subrange sits at its
// midpoint, alternating the split axis by depth.
func buildSubtree(entries []indexEntry, depth int) {
	if len(entries) <= 1 {
		return
	}
	axis := depth % 3
	sort.SliceStable(entries, func(i, j int) bool {
		return axisCoord(entries[i].point, axis) < axisCoord(entries[j].point, axis)
	})
	mid := len(entries) / 2
	buildSubtree(entries[:mid], depth+1)
	buildSubtree(entries[mid+1:], depth+1)
}

// Len returns the number of indexed points.
func (x *PointIndex) Len() int {
	return len(x.entries)
}

// Nearest returns the position (in the original coordinate slice) of the
// reference point closest to the query by great-circle distance, or -1 when
// the index is empty.
func (x *PointIndex) Nearest(lat, lng float64) int {
	if len(x.entries) == 0 {
		return -1
	}
	query := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))

	best := -1
	bestDist := math.MaxFloat64

	var search func(lo, hi, depth int)
	search = func(lo, hi, depth int) {
		if lo >= hi {
			return
		}
		mid := (lo + hi) / 2
		e := x.entries[mid]

		if d := chordDist2(query, e.point); d < bestDist {
			bestDist = d
			best = e.id
		}

		axis := depth % 3
		delta := axisCoord(query, axis) - axisCoord(e.point, axis)

		nearLo, nearHi := lo, mid
		farLo, farHi := mid+1, hi
		if delta >= 0 {
			nearLo, nearHi, farLo, farHi = farLo, farHi, nearLo, nearHi
		}

		search(nearLo, nearHi, depth+1)
		// Only cross the splitting plane when it could hide a closer point.
		if delta*delta < bestDist {
			search(farLo, farHi, depth+1)
		}
	}
	search(0, len(x.entries), 0)

	return best
}

// chordDist2 is the squared straight-line distance between two unit vectors.
func chordDist2(a, b s2.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return dx*dx + dy*dy + dz*dz
}

func axisCoord(p s2.Point, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}
