package dashboard

// ============================================================================
// DASHBOARD OPTIONS — Functional options for Build()
// ============================================================================

// Option configures dashboard behavior via functional options pattern.
type Option func(*config)

type config struct {
	TopBaseStats    int // rows in top_base_stats
	TopImmune       int // rows in most_immune
	TopFastest      int // rows in fastest
	TopNormalAttack int // rows in strongest_normals
}

// Limits groups the top-N sizes of the ranking tables.
type Limits struct {
	TopBaseStats    int
	TopImmune       int
	TopFastest      int
	TopNormalAttack int
}

// DefaultLimits returns the ranking sizes of the stock dashboard.
func DefaultLimits() Limits {
	return Limits{
		TopBaseStats:    10,
		TopImmune:       15,
		TopFastest:      5,
		TopNormalAttack: 5,
	}
}

// WithLimits overrides the ranking sizes. Zero fields keep their default.
func WithLimits(l Limits) Option {
	return func(c *config) {
		if l.TopBaseStats > 0 {
			c.TopBaseStats = l.TopBaseStats
		}
		if l.TopImmune > 0 {
			c.TopImmune = l.TopImmune
		}
		if l.TopFastest > 0 {
			c.TopFastest = l.TopFastest
		}
		if l.TopNormalAttack > 0 {
			c.TopNormalAttack = l.TopNormalAttack
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	d := DefaultLimits()
	cfg := &config{
		TopBaseStats:    d.TopBaseStats,
		TopImmune:       d.TopImmune,
		TopFastest:      d.TopFastest,
		TopNormalAttack: d.TopNormalAttack,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
