// Package algo implements the numeric building blocks for risk clustering:
// feature standardization and a seeded k-means partitioner.
package algo

import (
	"math"
	"math/rand"
)

const maxIterations = 100

// Standardize scales each column of rows to zero mean and unit variance
// across the row population. Columns with near-zero variance collapse to all
// zeros instead of dividing by ~0. The input is not modified.
func Standardize(rows [][]float64) [][]float64 {
	if len(rows) == 0 {
		return nil
	}
	dims := len(rows[0])
	n := float64(len(rows))

	means := make([]float64, dims)
	for _, row := range rows {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= n
	}

	stds := make([]float64, dims)
	for _, row := range rows {
		for j, v := range row {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / n)
	}

	scaled := make([][]float64, len(rows))
	for i, row := range rows {
		scaled[i] = make([]float64, dims)
		for j, v := range row {
			if stds[j] > 1e-12 {
				scaled[i][j] = (v - means[j]) / stds[j]
			}
		}
	}
	return scaled
}

// KMeans partitions rows into k clusters using Lloyd's algorithm with
// multiple random restarts; the restart with the lowest within-cluster sum of
// squares wins. The seed fixes the restart sequence, so identical input
// yields identical assignments. k is clamped to the number of rows; when the
// rows hold fewer distinct vectors than k the result is a best-effort
// partition with some clusters empty or duplicated.
func KMeans(rows [][]float64, k, restarts int, seed int64) []int {
	if len(rows) == 0 {
		return nil
	}
	if k > len(rows) {
		k = len(rows)
	}
	if k < 1 {
		k = 1
	}
	if restarts < 1 {
		restarts = 1
	}

	rng := rand.New(rand.NewSource(seed))

	best := make([]int, len(rows))
	bestInertia := math.MaxFloat64
	for range restarts {
		assign, inertia := runLloyd(rows, k, rng)
		if inertia < bestInertia {
			bestInertia = inertia
			copy(best, assign)
		}
	}
	return best
}

// runLloyd performs one seeded initialization plus iteration to convergence.
func runLloyd(rows [][]float64, k int, rng *rand.Rand) ([]int, float64) {
	dims := len(rows[0])

	// Initialize centroids from k distinct rows.
	centroids := make([][]float64, k)
	for i, ri := range rng.Perm(len(rows))[:k] {
		centroids[i] = append([]float64(nil), rows[ri]...)
	}

	assign := make([]int, len(rows))
	for range maxIterations {
		changed := false
		for i, row := range rows {
			c := nearestCentroid(row, centroids)
			if assign[i] != c {
				assign[i] = c
				changed = true
			}
		}

		// Recompute centroids as cluster means; reseed empty clusters from a
		// random row so every cluster id stays usable.
		counts := make([]int, k)
		sums := make([][]float64, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, row := range rows {
			c := assign[i]
			counts[c]++
			for j, v := range row {
				sums[c][j] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				centroids[c] = append([]float64(nil), rows[rng.Intn(len(rows))]...)
				continue
			}
			for j := range centroids[c] {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}

		if !changed {
			break
		}
	}

	var inertia float64
	for i, row := range rows {
		inertia += dist2(row, centroids[assign[i]])
	}
	return assign, inertia
}

// nearestCentroid breaks ties toward the lower cluster index.
func nearestCentroid(row []float64, centroids [][]float64) int {
	best := 0
	bestDist := dist2(row, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := dist2(row, centroids[c]); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func dist2(a, b []float64) float64 {
	var sum float64
	for j := range a {
		d := a[j] - b[j]
		sum += d * d
	}
	return sum
}
