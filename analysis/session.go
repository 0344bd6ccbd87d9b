// Package analysis records labeled observations and evaluates how well each
// observation feature predicts the label with a k-nearest-neighbors vote.
//
// A Session owns its observation log. The lifecycle is
// NewSession, Record (any number of times), Run, then discard.
package analysis

import (
	"context"
	"sync"

	"github.com/YuminosukeSato/scoreknn/core/dataset"
	"github.com/YuminosukeSato/scoreknn/pkg/log"
)

const (
	// DefaultTestSetSize is the number of held-out rows per feature evaluation.
	DefaultTestSetSize = 50
	// DefaultK is the number of voting neighbors.
	DefaultK = 10
)

// Option configures a Session.
type Option func(*config)

type config struct {
	testSetSize int
	k           int
	seeded      bool
	seed        uint64
	combined    bool
	logger      log.Logger
}

// WithTestSetSize overrides DefaultTestSetSize.
func WithTestSetSize(n int) Option {
	return func(c *config) {
		c.testSetSize = n
	}
}

// WithK overrides DefaultK.
func WithK(k int) Option {
	return func(c *config) {
		c.k = k
	}
}

// WithRandomState makes every Run reproducible: the splits of a run are drawn
// from a generator seeded with seed.
func WithRandomState(seed uint64) Option {
	return func(c *config) {
		c.seeded = true
		c.seed = seed
	}
}

// WithCombinedFeatures additionally evaluates all three features jointly,
// reported under AllFeatures.
func WithCombinedFeatures() Option {
	return func(c *config) {
		c.combined = true
	}
}

// WithLogger sets the logger used for per-feature results.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Session holds the observation log of one event source.
// Record and Run may be called from different goroutines.
type Session[L comparable] struct {
	mu           sync.RWMutex
	observations []dataset.Observation[L]
	cfg          config
}

// NewSession creates an empty session.
func NewSession[L comparable](opts ...Option) *Session[L] {
	cfg := config{
		testSetSize: DefaultTestSetSize,
		k:           DefaultK,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("analysis")
	}
	return &Session[L]{cfg: cfg}
}

// Record appends one observation to the log in arrival order.
func (s *Session[L]) Record(feature1, feature2, feature3 float64, label L) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observations = append(s.observations, dataset.NewObservation(feature1, feature2, feature3, label))
}

// Len returns the number of recorded observations.
func (s *Session[L]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observations)
}

// Observations returns a snapshot of the log.
func (s *Session[L]) Observations() []dataset.Observation[L] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dataset.Observation[L], len(s.observations))
	copy(out, s.observations)
	return out
}

// Reset discards every recorded observation.
func (s *Session[L]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observations = nil
}

// Run evaluates every feature against the current snapshot of the log.
func (s *Session[L]) Run(ctx context.Context) (*Report, error) {
	return newRunner[L](s.cfg).run(ctx, s.Observations())
}
