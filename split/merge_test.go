package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeClusters(t *testing.T) {
	// Two splits of sizes 3 and 4 with local clusters [[0,1],[2]] and
	// [[0],[1,2,3]]; index maps {0:5,1:2,2:9} and {0:4,1:1,2:0,3:7}.
	indices := [][]int{
		{5, 2, 9},
		{4, 1, 0, 7},
	}
	clusters := [][][]int{
		{{0, 1}, {2}},
		{{0}, {1, 2, 3}},
	}

	got := MergeClusters(indices, clusters)

	assert.Equal(t, [][]int{{5, 2}, {9}, {4}, {1, 0, 7}}, got)
}

func TestMergeHierarchical(t *testing.T) {
	splits := []HierarchicalSplit{
		{
			Clusters: [][]int{{0}, {1}, {0, 1}},
			Children: [][2]int{NoChildren, NoChildren, {0, 1}},
			Scores:   []float64{0.1, 0.2, 0.3},
		},
		{
			Clusters: [][]int{{2}, {3}, {2, 3}},
			Children: [][2]int{NoChildren, NoChildren, {0, 1}},
			Scores:   []float64{0.4, 0.5, 0.6},
		},
	}

	clusters, children, scores := MergeHierarchical(splits)

	assert.Equal(t, [][]int{{0}, {1}, {0, 1}, {2}, {3}, {2, 3}}, clusters)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, scores)

	// Child pairs of the second split are offset by the first split's
	// cluster count; leaf markers pass through untouched.
	assert.Equal(t, [][2]int{
		NoChildren, NoChildren, {0, 1},
		NoChildren, NoChildren, {3, 4},
	}, children)
}
