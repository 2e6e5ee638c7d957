// Package action implements the action algebra of §3.3/§4.2: the
// built-in action forms, each a small factory-constructed type in the
// style of mergeop.Symbol/Op, plus the EquivHint classification the
// search engine uses to sort maximizing moves from frontier-expanding
// ones. Grounded on original_source/plotex.py's Action subclasses.
package action

import (
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
)

// EquivHint is an action's static equivalence classification: whether
// applying it can only improve a state (Improve, or a no-op: Same), can
// only lose ground (Loss), or isn't known in advance (Unknown). The
// search engine treats this as advisory, not authoritative — see
// search.Graph's node expansion.
type EquivHint int

const (
	Unknown EquivHint = iota
	Same
	Improve
	Loss
)

func (h EquivHint) String() string {
	switch h {
	case Same:
		return "SAME"
	case Improve:
		return "IMPR"
	case Loss:
		return "LOSS"
	default:
		return "????"
	}
}

// Action is an operation on a state: it returns the resulting state and
// true, or (nil, false) if it can't be applied in s. Unlike most of the
// teacher's Op interface, Action carries no match/patch split — a
// PlotEx action is always evaluate-and-transform in one step.
type Action interface {
	// Name is the action's declared name, or "" if never named by a
	// scenario.Builder registration.
	Name() string
	// Apply attempts the action against s.
	Apply(s *state.State) (*state.State, bool)
	// Equiv reports the action's static equivalence classification.
	Equiv() EquivHint
	// Fragment returns the schema fragment of qualities this action (and
	// any nested actions) touches, for scenario-wide schema merging.
	Fragment() quality.Fragment
	// SubActions returns nested actions (Chain, Choice, Once), or nil.
	SubActions() []Action
}

// namer is implemented by actions whose behavior depends on their
// registered name (only Once, which derives its tracking key from it).
type namer interface {
	setName(name string)
}

// SetName assigns name to act if it cares about its name, and is a
// no-op otherwise. scenario.Builder calls this for every action it
// registers, mirroring TrackMetaClass's "val.name = key" assignment.
func SetName(act Action, name string) {
	if n, ok := act.(namer); ok {
		n.setName(name)
	}
}

type base struct {
	name string
	hint EquivHint
	frag quality.Fragment
}

func (b *base) Name() string                  { return b.name }
func (b *base) Equiv() EquivHint               { return b.hint }
func (b *base) Fragment() quality.Fragment     { return b.frag }
func (b *base) SubActions() []Action           { return nil }

func (b *base) setName(name string) {
	if b.name == "" {
		b.name = name
	}
}

// mergeFragments unions the schema fragments of a list of sub-actions,
// the same role merge_typelists_of plays for Chain/Choice/Once.
func mergeFragments(acts []Action) quality.Fragment {
	out := make(quality.Fragment)
	for _, a := range acts {
		for k, t := range a.Fragment() {
			out[k] = t
		}
	}
	return out
}
