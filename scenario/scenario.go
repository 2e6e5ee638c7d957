// Package scenario assembles states, actions, and tests into a single
// schema-checked Scenario, the Go replacement for original_source/
// plotex.py's TrackMetaClass magic: explicit (name, object)
// registration through a Builder instead of scanning a class body.
package scenario

import (
	"fmt"
	"sort"

	"github.com/plotex-go/plotex/action"
	"github.com/plotex-go/plotex/debug"
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
)

// Scenario is the fully assembled, immutable result of a Builder.Build
// call: a merged schema, every declared state keyed by name, every
// declared action keyed by name (with a stable alphabetical listing for
// the CLI), and every declared test keyed by name.
type Scenario struct {
	Schema  *quality.Schema
	States  map[string]*state.State
	Actions map[string]action.Action
	Tests   map[string]*Test

	declOrder   []string
	sortedNames []string
}

// ActionNames returns every declared action's name, sorted
// alphabetically — the order the CLI lists and runs actions in.
func (s *Scenario) ActionNames() []string {
	out := make([]string, len(s.sortedNames))
	copy(out, s.sortedNames)
	return out
}

// DeclaredActionNames returns action names in declaration order, the
// order the search engine favors when more than one action applies
// equally well (matching the original's reliance on dict insertion
// order within a single Python process).
func (s *Scenario) DeclaredActionNames() []string {
	out := make([]string, len(s.declOrder))
	copy(out, s.declOrder)
	return out
}

// Builder assembles a Scenario from explicit, named registrations. It
// holds state declarations as raw quality values until Build, since a
// state.State can't be canonicalized until the scenario's full schema
// (the union of every action's and test's schema fragment) is known.
type Builder struct {
	stateOrder []string
	stateRaw   map[string]map[string]any
	stateFrag  map[string]quality.Fragment

	actionOrder []string
	actions     map[string]action.Action

	testOrder []string
	tests     map[string]*Test
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		stateRaw:  map[string]map[string]any{},
		stateFrag: map[string]quality.Fragment{},
		actions:   map[string]action.Action{},
		tests:     map[string]*Test{},
	}
}

// State registers a named state from raw quality values.
func (b *Builder) State(name string, qualities map[string]any) error {
	if _, exists := b.stateRaw[name]; exists {
		return fmt.Errorf("%w: state %q already registered", ErrName, name)
	}
	frag, err := quality.Infer(qualities)
	if err != nil {
		return fmt.Errorf("scenario: state %q: %w", name, err)
	}
	b.stateOrder = append(b.stateOrder, name)
	b.stateRaw[name] = qualities
	b.stateFrag[name] = frag
	return nil
}

// Action registers a named action, built by one of the action package's
// factory functions. The action's name is recorded on it (Once uses
// this to derive its tracking key when no explicit key was given).
func (b *Builder) Action(name string, act action.Action) error {
	if _, exists := b.actions[name]; exists {
		return fmt.Errorf("%w: action %q already registered", ErrName, name)
	}
	action.SetName(act, name)
	b.actionOrder = append(b.actionOrder, name)
	b.actions[name] = act
	return nil
}

// Test registers a named test.
func (b *Builder) Test(name string, t *Test) error {
	if _, exists := b.tests[name]; exists {
		return fmt.Errorf("%w: test %q already registered", ErrName, name)
	}
	t.name = name
	b.testOrder = append(b.testOrder, name)
	b.tests[name] = t
	return nil
}

// Build merges every declaration's schema fragment into one Schema,
// canonicalizes every declared state against it, and resolves every
// test's start states and blocked-action set.
func (b *Builder) Build() (*Scenario, error) {
	fragments := make([]quality.Fragment, 0, len(b.stateFrag)+len(b.actions)+len(b.tests))
	for _, f := range b.stateFrag {
		fragments = append(fragments, f)
	}
	for _, a := range b.actions {
		fragments = append(fragments, a.Fragment())
	}
	for name, t := range b.tests {
		f, err := t.fragment()
		if err != nil {
			return nil, fmt.Errorf("scenario: test %q: %w", name, err)
		}
		fragments = append(fragments, f)
	}
	schema, err := quality.Merge(fragments...)
	if err != nil {
		return nil, err
	}
	if debug.Scenario() {
		debug.Logf("scenario: merged %d fragments into %d keys\n", len(fragments), len(schema.Keys()))
	}

	states := make(map[string]*state.State, len(b.stateOrder))
	for _, name := range b.stateOrder {
		s, err := state.New(schema, b.stateRaw[name])
		if err != nil {
			return nil, fmt.Errorf("scenario: state %q: %w", name, err)
		}
		states[name] = s.WithName(name)
	}

	for name, t := range b.tests {
		if err := t.resolve(schema, states); err != nil {
			return nil, fmt.Errorf("scenario: test %q: %w", name, err)
		}
		for _, blocked := range t.blockNames {
			if _, ok := b.actions[blocked]; !ok {
				return nil, fmt.Errorf("%w: test %q blocks unknown action %q", ErrName, name, blocked)
			}
		}
	}

	sortedNames := append([]string(nil), b.actionOrder...)
	sort.Strings(sortedNames)

	return &Scenario{
		Schema:      schema,
		States:      states,
		Actions:     b.actions,
		Tests:       b.tests,
		declOrder:   append([]string(nil), b.actionOrder...),
		sortedNames: sortedNames,
	}, nil
}
