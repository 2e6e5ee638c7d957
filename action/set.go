package action

import (
	"github.com/plotex-go/plotex/debug"
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
	"github.com/plotex-go/plotex/value"
)

// Set overwrites the given qualities in the state, replacing any
// existing value outright (including set-valued qualities — Set does
// not union, Include does). Its equivalence is precomputed at
// construction: if every touched quality is boolean and each is being
// driven toward "better" (true for positive-sense, false for
// negative-sense), the whole action is an improvement; if all-boolean
// but mixed, it's a loss. Mixed-type Sets stay Unknown, matching the
// original's "allbool" check.
func Set(qualities map[string]any) (Action, error) {
	frag, err := quality.Infer(qualities)
	if err != nil {
		return nil, err
	}
	hint := Unknown
	allBool := true
	for _, t := range frag {
		if t != quality.Bool {
			allBool = false
			break
		}
	}
	if allBool {
		pos := 0
		for k, v := range qualities {
			key := quality.Key(k)
			b := v.(bool)
			if (key.SenseOf() == quality.Positive && b) || (key.SenseOf() == quality.Negative && !b) {
				pos++
			}
		}
		if pos == len(qualities) {
			hint = Improve
		} else {
			hint = Loss
		}
	}
	return &setAction{base: base{hint: hint, frag: frag}, qualities: qualities}, nil
}

type setAction struct {
	base
	qualities map[string]any
}

func (a *setAction) Apply(s *state.State) (*state.State, bool) {
	vals := s.Values()
	schema := s.Schema()
	for k, raw := range a.qualities {
		key := quality.Key(k)
		t, ok := schema.Type(key)
		if !ok {
			return nil, false
		}
		v, err := value.From(t, raw)
		if err != nil {
			return nil, false
		}
		vals[key] = v
	}
	result := state.FromValues(schema, vals)
	if debug.Action() {
		debug.Logf("action: %s applied, %s -> %s\n", a.Name(), s, result)
	}
	return result, true
}
