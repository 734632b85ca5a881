package ringscore

import (
	"time"

	"github.com/hupe1980/ringscore/bitvec"
	"github.com/hupe1980/ringscore/group"
	"github.com/hupe1980/ringscore/similarity"
	"github.com/hupe1980/ringscore/split"
	"github.com/hupe1980/ringscore/tree"
)

// metadataWeights combine compactness, mean AVRD and mean burstness,
// favoring compactness.
var metadataWeights = []float64{4.0 / 5, 1.0 / 10, 1.0 / 10}

// Scorer computes anomaly scores for groups of users. Construct with New;
// a Scorer is safe for sequential use only.
type Scorer struct {
	ds    Dataset
	simi  similarity.UserSimilarity
	opts  options
	feats *features
}

// New creates a Scorer over the given dataset. With WithMetadata, the
// per-user rating-deviation and burstness features are precomputed here.
func New(ds Dataset, opts ...Option) (*Scorer, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	vectors := make([]*bitvec.Vector, ds.NumUsers())
	for u := range vectors {
		vectors[u] = ds.UserVector(u)
	}

	s := &Scorer{
		ds:   ds,
		simi: similarity.NewMatrix(vectors),
		opts: o,
	}

	if o.reviews != nil {
		start := time.Now()
		feats, err := computeFeatures(ds.NumUsers(), ds.NumItems(), o.reviews, o.burstnessThreshold, o.parallelism)
		if err != nil {
			return nil, err
		}
		s.feats = feats
		o.logger.Debug("precomputed metadata features",
			"users", ds.NumUsers(),
			"reviews", len(o.reviews),
			"duration", time.Since(start))
	}

	return s, nil
}

// Similarity returns the user-similarity collaborator built over the
// dataset.
func (s *Scorer) Similarity() similarity.UserSimilarity {
	return s.simi
}

// Score computes the anomaly score of an arbitrary user list. The group
// node is built by folding the members' product vectors; neighbor tightness
// falls back to brute-force all-pairs enumeration since the group has no
// merge history.
func (s *Scorer) Score(users []int) float64 {
	if len(users) == 0 || len(users) > s.opts.maxGroupSize {
		return 0
	}

	f := group.NewForest(s.simi, 1)
	return s.scoreNode(f, f.AddGroup(users))
}

// scoreNode scores an already-built node. Groups above the size cap score
// 0 without computing any statistics.
func (s *Scorer) scoreNode(f *group.Forest, id int) float64 {
	n := f.Node(id)
	if n.NUsers > s.opts.maxGroupSize {
		return 0
	}

	pi := s.compactness(f, id)
	if s.feats == nil {
		return pi
	}

	avrd, burstness := s.feats.groupMeans(n.Users)

	return WeightedGeometricMean([]float64{pi, avrd, burstness}, metadataWeights)
}

// compactness is the product of the (optional) penalty and the three
// tightness statistics.
func (s *Scorer) compactness(f *group.Forest, id int) float64 {
	n := f.Node(id)

	penalty := 1.0
	if s.opts.enablePenalty {
		penalty = group.Penalty(n.NUsers, n.NTotalProducts, s.opts.beta)
	}

	return penalty * n.ReviewTightness() * n.ProductTightness() * f.AverageJaccard(id)
}

// HierarchicalScores scores every node of a binary linkage matrix. Leaves
// are built for ids [0, nLeaves) and each linkage row's merge is scored
// immediately after construction.
//
// indexMap translates leaf-local ids to dataset user ids when the linkage
// was computed over a sub-population; nil means identity over all dataset
// users. The returned node and score slices are indexed identically to the
// linkage's node ids.
func (s *Scorer) HierarchicalScores(linkage tree.Linkage, indexMap split.IndexMap) ([]*group.Node, []float64, error) {
	return s.treeScores(linkage, indexMap)
}

// CondensedTreeScores scores every node of an n-ary condensed tree. The
// returned node and score slices are indexed by the tree's own node ids:
// leaves occupy [0, nUsers), parents their encoded ids.
func (s *Scorer) CondensedTreeScores(ct tree.CondensedTree) ([]*group.Node, []float64, error) {
	return s.treeScores(ct, nil)
}

func (s *Scorer) treeScores(b tree.Builder, indexMap split.IndexMap) ([]*group.Node, []float64, error) {
	start := time.Now()

	nLeaves := s.ds.NumUsers()
	if indexMap != nil {
		nLeaves = len(indexMap)
	}

	total := b.NumNodes(nLeaves)

	f := group.NewForest(s.simi, 2*total)
	nodes := make([]*group.Node, total)
	scores := make([]float64, total)

	for i := 0; i < nLeaves; i++ {
		user := i
		if indexMap != nil {
			user = indexMap[i]
		}
		id := f.AddLeaf(user)
		nodes[i] = f.Node(id)
		scores[i] = s.scoreNode(f, id)
	}

	err := b.Build(f, nLeaves, func(externalID, arenaID int) {
		nodes[externalID] = f.Node(arenaID)
		scores[externalID] = s.scoreNode(f, arenaID)
	})
	if err != nil {
		return nil, nil, err
	}

	s.opts.logger.WithPass(nLeaves, total).Debug("scored hierarchy",
		"duration", time.Since(start))

	return nodes, scores, nil
}
