package split

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/ringscore/internal/kmeans"
)

// ErrGroupCount is returned when the split configuration is ambiguous:
// exactly one of MaxGroupSize and NumGroups must be nonzero.
var ErrGroupCount = errors.New("split: exactly one of MaxGroupSize and NumGroups must be set")

// DefaultTrials is the number of k-means attempts before falling back to a
// random split.
const DefaultTrials = 10

// DefaultKMeansIterations bounds Lloyd's algorithm per attempt.
const DefaultKMeansIterations = 100

// Config controls how a population is split. Exactly one of MaxGroupSize
// and NumGroups must be nonzero.
type Config struct {
	// MaxGroupSize caps the size of each split; the group count becomes
	// ceil(rows / MaxGroupSize).
	MaxGroupSize int

	// NumGroups fixes the number of splits directly.
	NumGroups int

	// Trials is the number of k-means attempts, each with one more
	// cluster than the last, before falling back to a random split.
	// Zero means DefaultTrials. Ignored by Random.
	Trials int
}

func (c Config) groupCount(rows int) (int, error) {
	switch {
	case c.MaxGroupSize != 0 && c.NumGroups != 0:
		return 0, ErrGroupCount
	case c.MaxGroupSize != 0:
		return int(math.Ceil(float64(rows) / float64(c.MaxGroupSize))), nil
	case c.NumGroups != 0:
		return c.NumGroups, nil
	default:
		return 0, ErrGroupCount
	}
}

// Result is a partition of a matrix's rows. Groups[i] holds the rows of
// split i; Indices[i] lists the original row indices of those rows, in the
// same order.
type Result struct {
	Groups  []*mat.Dense
	Indices [][]int
}

// IndexMap translates a split-local row index to its original row index.
type IndexMap []int

// IndexMaps returns one IndexMap per split.
func (r *Result) IndexMaps() []IndexMap {
	maps := make([]IndexMap, len(r.Indices))
	for i, idx := range r.Indices {
		maps[i] = IndexMap(idx)
	}
	return maps
}

// Random splits the matrix row-wise into groups of a shuffled row order:
// contiguous chunks of rng.Perm(rows), the last chunk absorbing the
// remainder.
func Random(rng *rand.Rand, m *mat.Dense, cfg Config) (*Result, error) {
	rows, _ := m.Dims()

	numGroups, err := cfg.groupCount(rows)
	if err != nil {
		return nil, err
	}

	shuffled := rng.Perm(rows)
	groupSize := rows / numGroups

	res := &Result{}
	for i := 0; i < numGroups; i++ {
		lo := i * groupSize
		hi := lo + groupSize
		if i == numGroups-1 {
			hi = rows
		}
		if lo == hi {
			continue
		}
		res.Indices = append(res.Indices, shuffled[lo:hi])
		res.Groups = append(res.Groups, extractRows(m, shuffled[lo:hi]))
	}

	return res, nil
}

// KMeans splits the matrix row-wise by clustering its rows. When
// MaxGroupSize drives the split, up to Trials attempts are made with an
// increasing cluster count until every cluster fits; if all attempts fail,
// the split falls back to Random. When NumGroups drives the split, a
// single attempt with that cluster count is made.
func KMeans(rng *rand.Rand, m *mat.Dense, cfg Config) (*Result, error) {
	rows, _ := m.Dims()

	numGroups, err := cfg.groupCount(rows)
	if err != nil {
		return nil, err
	}

	trials := cfg.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}
	if cfg.NumGroups != 0 {
		trials = 1
	}

	var lastErr error
	for t := 0; t < trials; t++ {
		res, err := trainSplit(rng, m, numGroups+t)
		if err != nil {
			lastErr = err
			break
		}
		if cfg.NumGroups != 0 || maxGroupLen(res) <= cfg.MaxGroupSize {
			return res, nil
		}
	}

	if cfg.NumGroups != 0 {
		return nil, fmt.Errorf("split: k-means produced no valid partition: %w", lastErr)
	}

	return Random(rng, m, Config{MaxGroupSize: cfg.MaxGroupSize})
}

func trainSplit(rng *rand.Rand, m *mat.Dense, k int) (*Result, error) {
	rows, _ := m.Dims()

	labels, err := kmeans.Train(rng, m, k, DefaultKMeansIterations)
	if err != nil {
		return nil, err
	}

	byCluster := make([][]int, k)
	for i := 0; i < rows; i++ {
		byCluster[labels[i]] = append(byCluster[labels[i]], i)
	}

	// Clusters left empty by Lloyd's algorithm are dropped.
	res := &Result{}
	for _, idx := range byCluster {
		if len(idx) == 0 {
			continue
		}
		res.Indices = append(res.Indices, idx)
		res.Groups = append(res.Groups, extractRows(m, idx))
	}

	return res, nil
}

func maxGroupLen(r *Result) int {
	var m int
	for _, idx := range r.Indices {
		if len(idx) > m {
			m = len(idx)
		}
	}
	return m
}

func extractRows(m *mat.Dense, indices []int) *mat.Dense {
	_, cols := m.Dims()

	out := mat.NewDense(len(indices), cols, nil)
	for i, idx := range indices {
		out.SetRow(i, m.RawRowView(idx))
	}
	return out
}
