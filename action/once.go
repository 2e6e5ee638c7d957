package action

import (
	"fmt"
	"sync/atomic"

	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
	"github.com/plotex-go/plotex/value"
)

// unnamedCount numbers Once actions that end up with neither an
// explicit key nor a registered name, mirroring Action.unnamedcount.
var unnamedCount int64

// OnceOption configures a Once action.
type OnceOption func(*onceAction)

// WithKey pins the tracking quality Once uses to remember it already
// fired, instead of deriving one from the action's registered name.
func WithKey(key string) OnceOption {
	return func(o *onceAction) { o.key = quality.Key(key) }
}

// Wrapping makes Once gate a nested action: once the tracking quality
// flips, the wrapped action runs against the resulting state.
func Wrapping(act Action) OnceOption {
	return func(o *onceAction) { o.wrapped = act }
}

// Once lets an action (or a bare tracking flag) fire at most once
// across a scenario's exploration, using a hidden boolean quality to
// remember whether it already fired. Without WithKey, the key is
// derived lazily from the action's registered name
// (scenario.Builder.Action calls SetName at registration, before
// Build reads Fragment) as "_did_<name>", or "_did_action_<n>" if never named —
// exactly as the original generates Action.unnamedcount-based keys for
// anonymous Once actions. Once is always a Loss: using up a one-shot is
// never something the search engine should treat as free.
func Once(opts ...OnceOption) Action {
	o := &onceAction{base: base{hint: Loss}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type onceAction struct {
	base
	key     quality.Key
	wrapped Action
}

func (a *onceAction) resolvedKey() quality.Key {
	if a.key != "" {
		return a.key
	}
	if a.name != "" {
		return quality.Key(fmt.Sprintf("_did_%s", a.name))
	}
	n := atomic.AddInt64(&unnamedCount, 1)
	a.key = quality.Key(fmt.Sprintf("_did_action_%d", n))
	return a.key
}

func (a *onceAction) Fragment() quality.Fragment {
	frag := quality.Fragment{a.resolvedKey(): quality.Bool}
	if a.wrapped != nil {
		for k, t := range a.wrapped.Fragment() {
			frag[k] = t
		}
	}
	return frag
}

func (a *onceAction) SubActions() []Action {
	if a.wrapped == nil {
		return nil
	}
	return []Action{a.wrapped}
}

func (a *onceAction) Apply(s *state.State) (*state.State, bool) {
	key := a.resolvedKey()
	vals := s.Values()
	if key.SenseOf() == quality.Negative {
		if s.Has(key) {
			return nil, false
		}
		vals[key] = value.Bool(true)
	} else {
		if !s.Has(key) {
			return nil, false
		}
		delete(vals, key)
	}
	next := state.FromValues(s.Schema(), vals)
	if a.wrapped == nil {
		return next, true
	}
	return a.wrapped.Apply(next)
}
