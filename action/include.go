package action

import (
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
	"github.com/plotex-go/plotex/value"
)

// Include unions the given members into a set-valued quality,
// unconditionally. Its equivalence is left Unknown: adding to a
// positive-sense set is usually an improvement but Include makes no
// static claim, matching the original.
func Include(key string, members ...string) Action {
	k := quality.Key(key)
	return &includeAction{
		base:    base{frag: quality.Fragment{k: quality.StringSet}},
		key:     k,
		members: members,
	}
}

type includeAction struct {
	base
	key     quality.Key
	members []string
}

func (a *includeAction) Apply(s *state.State) (*state.State, bool) {
	cur, ok := s.Get(a.key)
	if !ok {
		cur = value.Set()
	}
	vals := s.Values()
	vals[a.key] = cur.SetUnion(a.members...)
	return state.FromValues(s.Schema(), vals), true
}

// Exclude removes the given members from a set-valued quality, failing
// if the quality doesn't currently hold all of them.
func Exclude(key string, members ...string) Action {
	k := quality.Key(key)
	return &excludeAction{
		base:    base{frag: quality.Fragment{k: quality.StringSet}},
		key:     k,
		members: members,
	}
}

type excludeAction struct {
	base
	key     quality.Key
	members []string
}

func (a *excludeAction) Apply(s *state.State) (*state.State, bool) {
	cur, ok := s.Get(a.key)
	if !ok {
		cur = value.Set()
	}
	want := value.Set(a.members...)
	if !cur.SetSuperset(want) {
		return nil, false
	}
	vals := s.Values()
	vals[a.key] = cur.SetDifference(want)
	return state.FromValues(s.Schema(), vals), true
}
