package ringscore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ringscore/bitvec"
	"github.com/hupe1980/ringscore/split"
	"github.com/hupe1980/ringscore/tree"
)

type memDataset struct {
	nItems  int
	vectors []*bitvec.Vector
}

func newMemDataset(nItems int, itemsPerUser ...[]int) *memDataset {
	d := &memDataset{nItems: nItems}
	for _, items := range itemsPerUser {
		d.vectors = append(d.vectors, bitvec.FromIndices(nItems, items))
	}
	return d
}

func (d *memDataset) NumUsers() int { return len(d.vectors) }

func (d *memDataset) NumItems() int { return d.nItems }

func (d *memDataset) UserVector(user int) *bitvec.Vector { return d.vectors[user] }

func TestNewNilDataset(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilDataset)
}

func TestScorePerfectRing(t *testing.T) {
	// Three users with identical product sets: every tightness is 1.
	ds := newMemDataset(4, []int{0, 1}, []int{0, 1}, []int{0, 1})

	s, err := New(ds)
	require.NoError(t, err)

	assert.InDelta(t, 1, s.Score([]int{0, 1, 2}), 1e-12)
}

func TestScoreSizeCap(t *testing.T) {
	ds := newMemDataset(4, []int{0, 1}, []int{0, 1}, []int{0, 1})

	s, err := New(ds, WithMaxGroupSize(2))
	require.NoError(t, err)

	// A group above the cap scores exactly 0 even though its raw
	// compactness is 1.
	assert.Zero(t, s.Score([]int{0, 1, 2}))
	assert.InDelta(t, 1, s.Score([]int{0, 1}), 1e-12)
}

func TestScoreEmptyGroup(t *testing.T) {
	ds := newMemDataset(4, []int{0})

	s, err := New(ds)
	require.NoError(t, err)

	assert.Zero(t, s.Score(nil))
}

func TestScoreDisjointUsers(t *testing.T) {
	ds := newMemDataset(4, []int{0, 1}, []int{2, 3})

	s, err := New(ds)
	require.NoError(t, err)

	// No common products: product tightness zeroes the score.
	assert.Zero(t, s.Score([]int{0, 1}))
}

func TestScoreWithPenalty(t *testing.T) {
	ds := newMemDataset(4, []int{0, 1}, []int{0, 1})

	s, err := New(ds, WithPenalty(DefaultBeta))
	require.NoError(t, err)

	// Two users, two products: Π = penalty · 1 · 1 · 1.
	want := 1 / (1 + math.Exp(-(DefaultBeta*4 - 3)))
	assert.InDelta(t, want, s.Score([]int{0, 1}), 1e-12)
}

func TestHierarchicalScores(t *testing.T) {
	// Users 0,1 form a tight pair; user 2 reviews something else entirely.
	ds := newMemDataset(6, []int{0, 1}, []int{0, 1}, []int{4, 5})

	s, err := New(ds)
	require.NoError(t, err)

	linkage := tree.Linkage{
		{Left: 0, Right: 1}, // node 3: the ring
		{Left: 3, Right: 2}, // node 4: root
	}

	nodes, scores, err := s.HierarchicalScores(linkage, nil)
	require.NoError(t, err)
	require.Len(t, nodes, 5)
	require.Len(t, scores, 5)

	// Single-user leaves are maximally tight.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1, scores[i], 1e-12)
		assert.Equal(t, 1, nodes[i].NUsers)
	}

	// The tight pair keeps a perfect score; adding the outsider kills
	// product tightness.
	assert.InDelta(t, 1, scores[3], 1e-12)
	assert.Zero(t, scores[4])

	assert.Equal(t, []int{0, 1, 2}, nodes[4].Users)
}

func TestHierarchicalScoresIndexMap(t *testing.T) {
	ds := newMemDataset(6, []int{4, 5}, []int{0, 1}, []int{0, 1})

	s, err := New(ds)
	require.NoError(t, err)

	// Sub-population {1, 2}: local leaf ids 0,1 map to users 1,2.
	linkage := tree.Linkage{{Left: 0, Right: 1}}

	nodes, scores, err := s.HierarchicalScores(linkage, split.IndexMap{1, 2})
	require.NoError(t, err)
	require.Len(t, scores, 3)

	assert.Equal(t, []int{1}, nodes[0].Users)
	assert.Equal(t, []int{2}, nodes[1].Users)
	assert.Equal(t, []int{1, 2}, nodes[2].Users)
	assert.InDelta(t, 1, scores[2], 1e-12)
}

func TestHierarchicalScoresMalformed(t *testing.T) {
	ds := newMemDataset(4, []int{0}, []int{1})

	s, err := New(ds)
	require.NoError(t, err)

	_, _, err = s.HierarchicalScores(tree.Linkage{{Left: 0, Right: 7}}, nil)
	assert.ErrorIs(t, err, tree.ErrMalformedTree)
}

func TestCondensedTreeScores(t *testing.T) {
	ds := newMemDataset(6, []int{0, 1}, []int{0, 1}, []int{0, 1}, []int{4, 5})

	s, err := New(ds)
	require.NoError(t, err)

	// Root 4 holds the tight triple 0,1,2; leaf 3 is noise.
	ct := tree.CondensedTree{
		{Parent: 4, Child: 0},
		{Parent: 4, Child: 1},
		{Parent: 4, Child: 2},
	}

	nodes, scores, err := s.CondensedTreeScores(ct)
	require.NoError(t, err)
	require.Len(t, scores, 5)

	assert.Equal(t, 3, nodes[4].NUsers)
	assert.InDelta(t, 1, scores[4], 1e-12)
}

func TestCondensedTreeScoresMalformed(t *testing.T) {
	ds := newMemDataset(4, []int{0}, []int{1})

	s, err := New(ds)
	require.NoError(t, err)

	// Child 9 has no prior row establishing it.
	ct := tree.CondensedTree{{Parent: 2, Child: 9}}

	_, _, err = s.CondensedTreeScores(ct)
	assert.ErrorIs(t, err, tree.ErrMalformedTree)
}

func TestScoreWithMetadata(t *testing.T) {
	ds := newMemDataset(2, []int{0, 1}, []int{0, 1})

	// Item means are 3 for both items; both users deviate by 2 per
	// review. User 0 is a 10-day burst, user 1 spans 40 days.
	reviews := []Review{
		{Item: 0, User: 0, Rating: 5, Date: day(0)},
		{Item: 0, User: 1, Rating: 1, Date: day(0)},
		{Item: 1, User: 0, Rating: 5, Date: day(10)},
		{Item: 1, User: 1, Rating: 1, Date: day(40)},
	}

	s, err := New(ds, WithMetadata(reviews))
	require.NoError(t, err)

	// Group {0}: Π = 1, mean AVRD = 2/5, mean burstness = 2/3.
	want := math.Exp((0.8*math.Log(1) + 0.1*math.Log(0.4) + 0.1*math.Log(2.0/3)) / 1)
	assert.InDelta(t, want, s.Score([]int{0}), 1e-12)

	// Group {1}: zero burstness proves innocence along that dimension.
	assert.Zero(t, s.Score([]int{1}))
}
