package kmeans

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Train runs Lloyd's algorithm over the rows of data and returns the
// cluster assignment of each row. Centroids are seeded from k distinct
// random rows drawn from rng; empty clusters are re-seeded with a random
// row during the update step.
func Train(rng *rand.Rand, data *mat.Dense, k, maxIter int) ([]int, error) {
	n, dim := data.Dims()
	if k <= 0 {
		return nil, fmt.Errorf("kmeans: k must be positive, got %d", k)
	}
	if n < k {
		return nil, fmt.Errorf("kmeans: %d rows cannot form %d clusters", n, k)
	}

	centroids := mat.NewDense(k, dim, nil)
	perm := rng.Perm(n)
	for i := 0; i < k; i++ {
		centroids.SetRow(i, data.RawRowView(perm[i]))
	}

	assignments := make([]int, n)
	counts := make([]int, k)
	sums := make([]float64, k*dim)

	for iter := 0; iter < maxIter; iter++ {
		changed := false

		// Assignment step
		for i := 0; i < n; i++ {
			row := data.RawRowView(i)
			best := -1
			minDist := math.MaxFloat64

			for j := 0; j < k; j++ {
				d := squaredL2(row, centroids.RawRowView(j))
				if d < minDist {
					minDist = d
					best = j
				}
			}

			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		if !changed && iter > 0 {
			break
		}

		// Update step
		for i := range sums {
			sums[i] = 0
		}
		for i := range counts {
			counts[i] = 0
		}

		for i := 0; i < n; i++ {
			cluster := assignments[i]
			row := data.RawRowView(i)
			for d := 0; d < dim; d++ {
				sums[cluster*dim+d] += row[d]
			}
			counts[cluster]++
		}

		for j := 0; j < k; j++ {
			if counts[j] > 0 {
				scale := 1 / float64(counts[j])
				for d := 0; d < dim; d++ {
					centroids.Set(j, d, sums[j*dim+d]*scale)
				}
			} else {
				centroids.SetRow(j, data.RawRowView(rng.Intn(n)))
			}
		}
	}

	return assignments, nil
}

func squaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
