package ringscore

import (
	"runtime"
)

const (
	// DefaultBeta is the default stretch of the small-group penalty
	// sigmoid. A smaller beta stretches the sigmoid, penalizing larger
	// groups too.
	DefaultBeta = 0.15

	// DefaultMaxGroupSize is the size above which a group scores 0: a
	// fraud ring of that size would be caught by smaller sub-groups.
	DefaultMaxGroupSize = 5000

	// DefaultBurstnessThreshold is the minimum activity span in days a
	// user must have for a burstness score of 0.
	DefaultBurstnessThreshold = 30
)

type options struct {
	enablePenalty      bool
	beta               float64
	maxGroupSize       int
	burstnessThreshold int
	reviews            []Review
	logger             *Logger
	parallelism        int
}

// Option configures Scorer construction.
type Option func(*options)

// WithPenalty enables the sigmoid penalty for small groups with the given
// beta. Pass DefaultBeta unless tuning.
func WithPenalty(beta float64) Option {
	return func(o *options) {
		o.enablePenalty = true
		o.beta = beta
	}
}

// WithMaxGroupSize overrides the size cap above which groups score 0.
func WithMaxGroupSize(size int) Option {
	return func(o *options) {
		o.maxGroupSize = size
	}
}

// WithMetadata enables metadata-augmented scoring from the given review
// rows. Per-user rating-deviation and burstness features are precomputed at
// construction time.
func WithMetadata(reviews []Review) Option {
	return func(o *options) {
		o.reviews = reviews
	}
}

// WithBurstnessThreshold overrides the activity-span threshold (in days)
// of the burstness feature. Only meaningful together with WithMetadata.
func WithBurstnessThreshold(days int) Option {
	return func(o *options) {
		o.burstnessThreshold = days
	}
}

// WithLogger configures structured logging. The default logger discards
// all output.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithParallelism bounds the number of workers used for the per-user
// metadata precompute. Defaults to runtime.NumCPU().
func WithParallelism(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

func defaultOptions() options {
	return options{
		beta:               DefaultBeta,
		maxGroupSize:       DefaultMaxGroupSize,
		burstnessThreshold: DefaultBurstnessThreshold,
		logger:             NoopLogger(),
		parallelism:        runtime.NumCPU(),
	}
}
