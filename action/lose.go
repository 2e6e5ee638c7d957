package action

import (
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
)

// Lose removes a set of qualities outright, failing if any of them is
// not currently present. Losing a positive-sense quality (an asset) is
// a Loss; losing only negative-sense qualities (burdens) is an
// Improve — never a mix, since Lose either succeeds on every key or
// fails.
func Lose(keys ...string) Action {
	// Lose contributes no type information of its own to schema
	// merging: unlike Set/Has/Reset, the original's Lose has an empty
	// typelist, so the key's type must come from some other
	// declaration that actually names a value.
	ks := make([]quality.Key, len(keys))
	pos := 0
	for i, k := range keys {
		key := quality.Key(k)
		ks[i] = key
		if key.SenseOf() == quality.Positive {
			pos++
		}
	}
	hint := Improve
	if pos > 0 {
		hint = Loss
	}
	return &loseAction{base: base{hint: hint, frag: quality.Fragment{}}, keys: ks}
}

type loseAction struct {
	base
	keys []quality.Key
}

func (a *loseAction) Apply(s *state.State) (*state.State, bool) {
	for _, k := range a.keys {
		if !s.Has(k) {
			return nil, false
		}
	}
	vals := s.Values()
	for _, k := range a.keys {
		delete(vals, k)
	}
	return state.FromValues(s.Schema(), vals), true
}
