package action

import (
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
	"github.com/plotex-go/plotex/value"
)

// IncrementOption configures Increment/Decrement's optional bound.
type IncrementOption func(*limitConfig)

type limitConfig struct {
	limit    int64
	hasLimit bool
}

// WithLimit caps Increment at limit (the action fails once the quality
// reaches it) or caps Decrement's floor at limit (default 0).
func WithLimit(limit int64) IncrementOption {
	return func(c *limitConfig) { c.limit, c.hasLimit = limit, true }
}

// Increment raises an int-valued quality by one, failing if it's
// already at the configured limit (no limit by default). Incrementing a
// positive-sense quality is an Improve; incrementing a burden is a
// Loss.
func Increment(key string, opts ...IncrementOption) Action {
	cfg := limitConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	k := quality.Key(key)
	hint := Improve
	if k.SenseOf() == quality.Negative {
		hint = Loss
	}
	return &incrementAction{
		base:  base{hint: hint, frag: quality.Fragment{k: quality.Int}},
		key:   k,
		cfg:   cfg,
		delta: 1,
	}
}

// Decrement lowers an int-valued quality by one, failing if it's
// already at the configured limit (0 by default). Decrementing a
// positive-sense quality is a Loss; decrementing a burden is an
// Improve.
func Decrement(key string, opts ...IncrementOption) Action {
	cfg := limitConfig{limit: 0, hasLimit: true}
	for _, o := range opts {
		o(&cfg)
	}
	k := quality.Key(key)
	hint := Loss
	if k.SenseOf() == quality.Negative {
		hint = Improve
	}
	return &incrementAction{
		base:  base{hint: hint, frag: quality.Fragment{k: quality.Int}},
		key:   k,
		cfg:   cfg,
		delta: -1,
	}
}

type incrementAction struct {
	base
	key   quality.Key
	cfg   limitConfig
	delta int64
}

func (a *incrementAction) Apply(s *state.State) (*state.State, bool) {
	cur := int64(0)
	if v, ok := s.Get(a.key); ok {
		cur = v.IntVal()
	}
	if a.cfg.hasLimit {
		if a.delta > 0 && cur >= a.cfg.limit {
			return nil, false
		}
		if a.delta < 0 && cur <= a.cfg.limit {
			return nil, false
		}
	}
	vals := s.Values()
	vals[a.key] = value.Int(cur + a.delta)
	return state.FromValues(s.Schema(), vals), true
}
