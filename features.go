package ringscore

import (
	"time"

	"golang.org/x/sync/errgroup"
)

// maxRatingDeviation normalizes the AVRD feature: ratings are 1-5 stars,
// so a user can deviate from an item's consensus by at most 5.
const maxRatingDeviation = 5

// features holds the precomputed per-user metadata arrays.
type features struct {
	avrd      []float64
	burstness []float64
}

// computeFeatures derives the per-user average rating deviation (AVRD) and
// burstness arrays from the review table. The aggregation over rows is a
// single sequential pass; the per-user finalization is spread across
// parallelism workers.
func computeFeatures(nUsers, nItems int, reviews []Review, burstnessThreshold, parallelism int) (*features, error) {
	itemSum := make([]float64, nItems)
	itemCount := make([]int, nItems)

	type userAgg struct {
		diffSum float64
		rated   int
		first   time.Time
		last    time.Time
	}
	agg := make([]userAgg, nUsers)

	for _, r := range reviews {
		if r.User < 0 || r.User >= nUsers {
			return nil, &ErrUserOutOfRange{User: r.User, Users: nUsers}
		}
		if r.Item < 0 || r.Item >= nItems {
			return nil, &ErrItemOutOfRange{Item: r.Item, Items: nItems}
		}
		itemSum[r.Item] += r.Rating
		itemCount[r.Item]++
	}

	itemMean := make([]float64, nItems)
	for i := range itemMean {
		if itemCount[i] > 0 {
			itemMean[i] = itemSum[i] / float64(itemCount[i])
		}
	}

	for _, r := range reviews {
		a := &agg[r.User]
		d := r.Rating - itemMean[r.Item]
		if d < 0 {
			d = -d
		}
		a.diffSum += d
		if a.rated == 0 || r.Date.Before(a.first) {
			a.first = r.Date
		}
		if a.rated == 0 || r.Date.After(a.last) {
			a.last = r.Date
		}
		a.rated++
	}

	f := &features{
		avrd:      make([]float64, nUsers),
		burstness: make([]float64, nUsers),
	}

	var g errgroup.Group
	g.SetLimit(parallelism)

	chunk := (nUsers + parallelism - 1) / parallelism
	for lo := 0; lo < nUsers; lo += chunk {
		lo := lo
		hi := min(lo+chunk, nUsers)
		g.Go(func() error {
			for u := lo; u < hi; u++ {
				a := agg[u]
				if a.rated == 0 {
					continue
				}
				f.avrd[u] = a.diffSum / float64(a.rated)

				span := int(a.last.Sub(a.first).Hours() / 24)
				if span < burstnessThreshold {
					f.burstness[u] = 1 - float64(span)/float64(burstnessThreshold)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return f, nil
}

// groupMeans returns the group-mean AVRD (normalized by the maximum rating
// deviation) and group-mean burstness of the given users.
func (f *features) groupMeans(users []int) (avrd, burstness float64) {
	if len(users) == 0 {
		return 0, 0
	}
	for _, u := range users {
		avrd += f.avrd[u]
		burstness += f.burstness[u]
	}
	n := float64(len(users))
	return avrd / n / maxRatingDeviation, burstness / n
}
