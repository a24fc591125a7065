package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/huangsam/streetrisk/core/algo"
	"github.com/huangsam/streetrisk/internal/contract"
	"github.com/huangsam/streetrisk/schema"
)

// ClusterRisk standardizes the per-segment features, partitions segments into
// ordered risk tiers, and derives a continuous risk score. Callers must skip
// clustering entirely on an empty feature set; this function returns nil for
// it. Tier ordering is population-relative: the same segment can land in a
// different tier across runs when the citywide distribution shifts.
func ClusterRisk(features []schema.FeatureRow, cfg *contract.Config, now time.Time) []schema.RiskResult {
	if len(features) == 0 {
		return nil
	}

	matrix := make([][]float64, len(features))
	for i, f := range features {
		matrix[i] = []float64{f.IncidentDensity, f.NightFraction, f.TrendRatio}
	}

	assign := algo.KMeans(algo.Standardize(matrix), cfg.Clusters, cfg.Restarts, cfg.Seed)
	labels := labelClustersByDensity(features, assign, cfg.Clusters)

	minDensity, maxDensity := densityRange(features)

	results := make([]schema.RiskResult, len(features))
	for i, f := range features {
		score := 0.0
		// All-identical densities leave the score at 0 instead of dividing
		// by ~0.
		if maxDensity-minDensity >= 1e-9 {
			score = (f.IncidentDensity - minDensity) / (maxDensity - minDensity)
		}

		results[i] = schema.RiskResult{
			UnitID:          f.UnitID,
			ClusterID:       assign[i],
			RiskLabel:       labels[assign[i]],
			RiskScore:       score,
			IncidentDensity: f.IncidentDensity,
			NightFraction:   f.NightFraction,
			Incidents:       f.Incidents,
			ModelVersion:    cfg.ModelVersion,
			Summary: fmt.Sprintf("%d incidents in %dd, night %.0f%%, trend x%.2f",
				f.Incidents, cfg.LookbackDays, f.NightFraction*100, f.TrendRatio),
			UpdatedAt: now,
		}
	}
	return results
}

// labelClustersByDensity orders cluster ids by ascending mean incident
// density and maps that order onto the tier sequence. Cluster ids themselves
// are an internal partitioning artifact; the label mapping re-derives the
// semantic ordering every run.
func labelClustersByDensity(features []schema.FeatureRow, assign []int, k int) map[int]schema.RiskLabel {
	sums := make([]float64, k)
	counts := make([]int, k)
	for i, f := range features {
		sums[assign[i]] += f.IncidentDensity
		counts[assign[i]]++
	}

	ids := make([]int, 0, k)
	for c := range k {
		if counts[c] > 0 {
			ids = append(ids, c)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return sums[ids[i]]/float64(counts[ids[i]]) < sums[ids[j]]/float64(counts[ids[j]])
	})

	order := tierSequence(len(ids))
	labels := make(map[int]schema.RiskLabel, k)
	for rank, id := range ids {
		labels[id] = order[min(rank, len(order)-1)]
	}
	// Clusters that ended up empty never appear in assign, but keep the map
	// total so lookups cannot miss.
	for c := range k {
		if _, ok := labels[c]; !ok {
			labels[c] = schema.LowRisk
		}
	}
	return labels
}

// tierSequence returns the ascending labels used for n density-ordered
// clusters. Two clusters map to the extreme tiers; beyond the known tiers
// the sequence clamps to the last label.
func tierSequence(n int) []schema.RiskLabel {
	if n == 2 {
		return []schema.RiskLabel{schema.LowRisk, schema.HighRisk}
	}
	return schema.LabelOrder
}

func densityRange(features []schema.FeatureRow) (float64, float64) {
	minDensity := features[0].IncidentDensity
	maxDensity := features[0].IncidentDensity
	for _, f := range features[1:] {
		minDensity = min(minDensity, f.IncidentDensity)
		maxDensity = max(maxDensity, f.IncidentDensity)
	}
	return minDensity, maxDensity
}
