package split

// MergeClusters translates per-split clustering results into the global
// index space. indices is a Result's Indices (original row indices per
// split); clusters[i] holds the clusters found within split i, each a list
// of split-local row indices. The returned clusters list their members as
// original row indices, concatenated in split order.
func MergeClusters(indices [][]int, clusters [][][]int) [][]int {
	var all [][]int
	for s, splitClusters := range clusters {
		im := IndexMap(indices[s])
		for _, cluster := range splitClusters {
			global := make([]int, len(cluster))
			for i, local := range cluster {
				global[i] = im[local]
			}
			all = append(all, global)
		}
	}
	return all
}

// NoChildren marks a cluster without merge history in a HierarchicalSplit.
var NoChildren = [2]int{-1, -1}

// HierarchicalSplit is the outcome of scoring one split's hierarchy:
// the clusters (user lists), each cluster's two children as indices into
// the same clusters slice (NoChildren for leaves), and the per-cluster
// anomaly scores.
type HierarchicalSplit struct {
	Clusters [][]int
	Children [][2]int
	Scores   []float64
}

// MergeHierarchical concatenates multiple splits' results into one combined
// tree description, offsetting every child pair by the running total of
// previously appended clusters so ids remain globally unique.
func MergeHierarchical(splits []HierarchicalSplit) (clusters [][]int, children [][2]int, scores []float64) {
	offset := 0
	for _, s := range splits {
		clusters = append(clusters, s.Clusters...)
		scores = append(scores, s.Scores...)
		for _, pair := range s.Children {
			if pair[0] >= 0 && pair[1] >= 0 {
				pair = [2]int{pair[0] + offset, pair[1] + offset}
			}
			children = append(children, pair)
		}
		offset += len(s.Clusters)
	}
	return clusters, children, scores
}
