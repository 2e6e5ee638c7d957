package scenario

import (
	"fmt"

	"github.com/plotex-go/plotex/action"
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
)

// Test is a declarative assertion against a scenario's exploration
// graph, grounded on original_source/plotex.py's Test class: a starting
// point (defaulting to the scenario's "Start" state), an optional set
// of blocked actions, and a chain of successive filters over the
// result states (Gets/Can/Includes narrow the survivor set; GetsNot/
// Cannot/Excludes must then match none of it).
type Test struct {
	name string

	startNames []string
	startRaw   []map[string]any
	blockNames []string

	includeActs []action.Action
	excludeActs []action.Action
	canActs     []action.Action
	cannotActs  []action.Action

	gets    []string
	getsNot []string

	resolvedStarts []*state.State
	blocked        map[string]struct{}
}

// TestOption configures a Test built with NewTest.
type TestOption func(*Test)

// Start references an already-declared named state as this test's
// starting point. A Test with no Start/StartRaw option defaults to the
// scenario's state named "Start", matching Test.startstates().
func Start(name string) TestOption {
	return func(t *Test) { t.startNames = append(t.startNames, name) }
}

// StartRaw declares an ad hoc starting state inline, for a test that
// doesn't want to share a named state (e.g. an empty starting point).
func StartRaw(qualities map[string]any) TestOption {
	return func(t *Test) { t.startRaw = append(t.startRaw, qualities) }
}

// Block excludes the named actions from this test's exploration run.
func Block(names ...string) TestOption {
	return func(t *Test) { t.blockNames = append(t.blockNames, names...) }
}

// Includes narrows the surviving result states to those whose history
// contains act; the test fails if none remain.
func Includes(act action.Action) TestOption {
	return func(t *Test) { t.includeActs = append(t.includeActs, act) }
}

// Excludes asserts that no surviving result state's history contains
// act.
func Excludes(act action.Action) TestOption {
	return func(t *Test) { t.excludeActs = append(t.excludeActs, act) }
}

// Can asserts that act succeeds against at least one surviving result
// state.
func Can(act action.Action) TestOption {
	return func(t *Test) { t.canActs = append(t.canActs, act) }
}

// Cannot asserts that act fails against every surviving result state.
func Cannot(act action.Action) TestOption {
	return func(t *Test) { t.cannotActs = append(t.cannotActs, act) }
}

// Gets narrows the surviving result states to those carrying the named
// quality; the test fails if none remain.
func Gets(keys ...string) TestOption {
	return func(t *Test) { t.gets = append(t.gets, keys...) }
}

// GetsNot asserts that no surviving result state carries the named
// quality.
func GetsNot(keys ...string) TestOption {
	return func(t *Test) { t.getsNot = append(t.getsNot, keys...) }
}

// NewTest builds a Test from the given options. Register it with a
// Builder to give it a name and include it in a Scenario.
func NewTest(opts ...TestOption) *Test {
	t := &Test{}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Name returns the test's registered name, or "" if unregistered.
func (t *Test) Name() string { return t.name }

// Gets returns the quality keys at least one surviving state must
// carry.
func (t *Test) Gets() []string { return t.gets }

// GetsNot returns the quality keys no surviving state may carry.
func (t *Test) GetsNot() []string { return t.getsNot }

// CanActions returns the actions at least one surviving state must
// satisfy.
func (t *Test) CanActions() []action.Action { return t.canActs }

// CannotActions returns the actions no surviving state may satisfy.
func (t *Test) CannotActions() []action.Action { return t.cannotActs }

// IncludeActions returns the actions that must appear in at least one
// surviving state's history.
func (t *Test) IncludeActions() []action.Action { return t.includeActs }

// ExcludeActions returns the actions that must not appear in any
// surviving state's history.
func (t *Test) ExcludeActions() []action.Action { return t.excludeActs }

// StartStates returns this test's resolved starting states, after
// Builder.Build has run.
func (t *Test) StartStates() []*state.State { return t.resolvedStarts }

// Blocks reports whether the named action is excluded from this test's
// exploration run.
func (t *Test) Blocks(name string) bool {
	_, ok := t.blocked[name]
	return ok
}

func (t *Test) fragment() (quality.Fragment, error) {
	frag := quality.Fragment{}
	for _, a := range t.canActs {
		for k, ty := range a.Fragment() {
			frag[k] = ty
		}
	}
	for _, a := range t.cannotActs {
		for k, ty := range a.Fragment() {
			frag[k] = ty
		}
	}
	for _, raw := range t.startRaw {
		f, err := quality.Infer(raw)
		if err != nil {
			return nil, err
		}
		for k, ty := range f {
			frag[k] = ty
		}
	}
	return frag, nil
}

func (t *Test) resolve(schema *quality.Schema, named map[string]*state.State) error {
	t.blocked = make(map[string]struct{}, len(t.blockNames))
	for _, n := range t.blockNames {
		t.blocked[n] = struct{}{}
	}

	if len(t.startNames) == 0 && len(t.startRaw) == 0 {
		start, ok := named["Start"]
		if !ok {
			return fmt.Errorf("%w: test %q has no start state and the scenario declares no \"Start\" state", ErrName, t.name)
		}
		t.resolvedStarts = []*state.State{start}
		return nil
	}

	for _, n := range t.startNames {
		s, ok := named[n]
		if !ok {
			return fmt.Errorf("%w: test %q references unknown start state %q", ErrName, t.name, n)
		}
		t.resolvedStarts = append(t.resolvedStarts, s)
	}
	for _, raw := range t.startRaw {
		s, err := state.New(schema, raw)
		if err != nil {
			return fmt.Errorf("scenario: test %q inline start state: %w", t.name, err)
		}
		t.resolvedStarts = append(t.resolvedStarts, s)
	}
	return nil
}
