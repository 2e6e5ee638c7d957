package action

import "github.com/plotex-go/plotex/state"

// Chain applies a sequence of actions in order, failing as soon as one
// of them fails. Its equivalence propagates: any Loss sub-action makes
// the whole chain a Loss; otherwise, if every sub-action is Same or
// Improve, the chain is an Improve; mixed-with-Unknown stays Unknown.
func Chain(actions ...Action) Action {
	hint := Unknown
	losses, improves := 0, 0
	for _, a := range actions {
		if a.Equiv() == Loss {
			losses++
		}
		if a.Equiv() == Same || a.Equiv() == Improve {
			improves++
		}
	}
	switch {
	case losses > 0:
		hint = Loss
	case improves == len(actions):
		hint = Improve
	}
	return &chainAction{base: base{hint: hint, frag: mergeFragments(actions)}, actions: actions}
}

type chainAction struct {
	base
	actions []Action
}

func (a *chainAction) SubActions() []Action { return a.actions }

func (a *chainAction) Apply(s *state.State) (*state.State, bool) {
	cur := s
	for _, sub := range a.actions {
		next, ok := sub.Apply(cur)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Choice tries each action in order and takes the first that succeeds,
// failing only if none do. Its equivalence is left Unknown: which
// branch fires depends on the state, so no static claim is safe.
func Choice(actions ...Action) Action {
	return &choiceAction{base: base{frag: mergeFragments(actions)}, actions: actions}
}

type choiceAction struct {
	base
	actions []Action
}

func (a *choiceAction) SubActions() []Action { return a.actions }

func (a *choiceAction) Apply(s *state.State) (*state.State, bool) {
	for _, sub := range a.actions {
		if next, ok := sub.Apply(s); ok {
			return next, true
		}
	}
	return nil, false
}
