package ringscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserwiseScores(t *testing.T) {
	clusters := [][]int{{0}, {1}, {0, 1}, {1, 2}}
	scores := []float64{0.2, 0.1, 0.5, 0.3}

	got := UserwiseScores(clusters, scores, 4)

	assert.Equal(t, []float64{0.5, 0.5, 0.3, 0}, got)
}

func TestFilterSmallGroups(t *testing.T) {
	clusters := [][]int{{0}, {1, 2}, {3, 4, 5}, {6, 7}}
	scores := []float64{0.1, 0.2, 0.3, 0.4}

	filtered, filteredScores := FilterSmallGroups(clusters, scores, 3)

	assert.Equal(t, [][]int{{0}, {1, 2}, {6, 7}}, filtered)
	assert.Equal(t, []float64{0.1, 0.2, 0.4}, filteredScores)

	filtered, filteredScores = FilterSmallGroups(clusters, scores, 1)
	assert.Empty(t, filtered)
	assert.Empty(t, filteredScores)
}
