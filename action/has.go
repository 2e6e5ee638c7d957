package action

import (
	"github.com/plotex-go/plotex/debug"
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
	"github.com/plotex-go/plotex/value"
)

// Has is a guard: it passes the state through unchanged if every named
// quality meets or exceeds (positive sense) or stays within (negative
// sense) the given threshold, and fails otherwise. It never modifies
// the state, so its equivalence is always Same.
func Has(qualities map[string]any) (Action, error) {
	frag, params, err := inferAndCoerce(qualities)
	if err != nil {
		return nil, err
	}
	return &hasAction{base: base{hint: Same, frag: frag}, params: params}, nil
}

type hasAction struct {
	base
	params map[quality.Key]value.Value
}

func (a *hasAction) Apply(s *state.State) (*state.State, bool) {
	for k, v := range a.params {
		if !meetsThreshold(s, k, v) {
			if debug.Action() {
				debug.Logf("action: %s rejected on %s: %s\n", a.Name(), k, s)
			}
			return nil, false
		}
	}
	return s, true
}

// HasAny is the disjunctive counterpart of Has: it passes the state
// through if at least one named quality meets its threshold.
func HasAny(qualities map[string]any) (Action, error) {
	frag, params, err := inferAndCoerce(qualities)
	if err != nil {
		return nil, err
	}
	return &hasAnyAction{base: base{hint: Same, frag: frag}, params: params}, nil
}

type hasAnyAction struct {
	base
	params map[quality.Key]value.Value
}

func (a *hasAnyAction) Apply(s *state.State) (*state.State, bool) {
	for k, v := range a.params {
		if meetsThreshold(s, k, v) {
			return s, true
		}
	}
	return nil, false
}

func meetsThreshold(s *state.State, k quality.Key, v value.Value) bool {
	if k.SenseOf() == quality.Positive {
		return s.AtLeast(k, v)
	}
	return s.AtMost(k, v)
}

func inferAndCoerce(qualities map[string]any) (quality.Fragment, map[quality.Key]value.Value, error) {
	frag, err := quality.Infer(qualities)
	if err != nil {
		return nil, nil, err
	}
	params := make(map[quality.Key]value.Value, len(qualities))
	for k, raw := range qualities {
		key := quality.Key(k)
		v, err := value.From(frag[key], raw)
		if err != nil {
			return nil, nil, err
		}
		params[key] = v
	}
	return frag, params, nil
}
