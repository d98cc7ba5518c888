package engine

import "time"

// ============================================================================
// ENGINE OPTIONS — Functional options for Reduce()
// ============================================================================

// Option configures a Reduce call via the functional options pattern.
type Option func(*config)

type config struct {
	now     func() time.Time
	measure TextMeasure
}

// WithClock overrides the wall clock used for "today" in date math.
// Tests pin this to a fixed instant.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// WithTextMeasure supplies real text metrics for tooltip clamping.
func WithTextMeasure(measure TextMeasure) Option {
	return func(c *config) {
		c.measure = measure
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		now:     time.Now,
		measure: estimateText,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
