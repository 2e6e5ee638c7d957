package action

import (
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
)

// Reset discards every existing quality and rebuilds the state from the
// given qualities alone, unlike Set which overlays onto the current
// state. Its equivalence is left Unknown, same as the original.
func Reset(qualities map[string]any) (Action, error) {
	frag, err := quality.Infer(qualities)
	if err != nil {
		return nil, err
	}
	return &resetAction{base: base{frag: frag}, qualities: qualities}, nil
}

type resetAction struct {
	base
	qualities map[string]any
}

func (a *resetAction) Apply(s *state.State) (*state.State, bool) {
	next, err := state.New(s.Schema(), a.qualities)
	if err != nil {
		return nil, false
	}
	return next, true
}
