package ringscore

// UserwiseScores reduces per-cluster scores to per-user scores: each user
// gets the maximum score among all clusters containing it, the tightest
// fraud ring the user could plausibly belong to.
func UserwiseScores(clusters [][]int, scores []float64, nUsers int) []float64 {
	userScores := make([]float64, nUsers)
	for i, score := range scores {
		for _, user := range clusters[i] {
			if userScores[user] < score {
				userScores[user] = score
			}
		}
	}
	return userScores
}

// FilterSmallGroups keeps only the clusters with fewer than minGroupSize
// members, along with their scores. The caller decides the cut line for
// interesting group sizes.
func FilterSmallGroups(clusters [][]int, scores []float64, minGroupSize int) ([][]int, []float64) {
	var (
		filtered       [][]int
		filteredScores []float64
	)
	for i, cluster := range clusters {
		if len(cluster) < minGroupSize {
			filtered = append(filtered, cluster)
			filteredScores = append(filteredScores, scores[i])
		}
	}
	return filtered, filteredScores
}
