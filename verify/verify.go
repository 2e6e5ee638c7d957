// Package verify implements the test runner of §4.5: running a
// scenario.Test's declared search, then successively narrowing and
// checking the resulting state set against the test's positive
// (existential) and negative (universal) assertions.
package verify

import (
	"fmt"

	"github.com/plotex-go/plotex/action"
	"github.com/plotex-go/plotex/debug"
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/scenario"
	"github.com/plotex-go/plotex/search"
	"github.com/plotex-go/plotex/state"
)

// Result is the outcome of running one Test: a pass/fail verdict plus,
// on failure, the reason the first violated assertion gave.
type Result struct {
	Test   *scenario.Test
	Pass   bool
	Reason string
	Graph  *search.Graph
}

// Run executes t's search (starting states minus blocked actions, with
// the default generation limit) and checks the successive filters of
// §4.5 against the resulting node table.
func Run(scen *scenario.Scenario, t *scenario.Test) Result {
	actions := allowedActions(scen, t)
	starts := t.StartStates()

	g, err := search.Run(scen, starts, actions, search.DefaultGenerationLimit, false)
	if err != nil {
		return Result{Test: t, Pass: false, Reason: err.Error(), Graph: g}
	}

	sigma := g.States()
	if debug.Verify() {
		debug.Logf("verify: %s: Σ starts at %d states\n", t.Name(), len(sigma))
	}

	for _, q := range t.Gets() {
		key := quality.Key(q)
		sigma = filterStates(sigma, func(s *state.State) bool { return s.Has(key) })
		if debug.Verify() {
			debug.Logf("verify: %s: gets %q narrows Σ to %d\n", t.Name(), q, len(sigma))
		}
		if len(sigma) == 0 {
			return fail(t, g, fmt.Sprintf("no resulting state carries quality %q", q))
		}
	}
	for i, p := range t.CanActions() {
		sigma = filterStates(sigma, func(s *state.State) bool {
			_, ok := p.Apply(s)
			return ok
		})
		if len(sigma) == 0 {
			return fail(t, g, fmt.Sprintf("no resulting state satisfies can-predicate #%d", i))
		}
	}
	for _, inc := range t.IncludeActions() {
		sigma = filterStates(sigma, func(s *state.State) bool { return historyContains(g, s, inc) })
		if len(sigma) == 0 {
			return fail(t, g, fmt.Sprintf("no resulting state's history includes %q", inc.Name()))
		}
	}

	for _, q := range t.GetsNot() {
		key := quality.Key(q)
		for _, s := range sigma {
			if s.Has(key) {
				return fail(t, g, fmt.Sprintf("a resulting state unexpectedly carries quality %q", q))
			}
		}
	}
	for i, p := range t.CannotActions() {
		for _, s := range sigma {
			if _, ok := p.Apply(s); ok {
				return fail(t, g, fmt.Sprintf("a resulting state unexpectedly satisfies cannot-predicate #%d", i))
			}
		}
	}
	for _, exc := range t.ExcludeActions() {
		for _, s := range sigma {
			if historyContains(g, s, exc) {
				return fail(t, g, fmt.Sprintf("a resulting state's history unexpectedly includes %q", exc.Name()))
			}
		}
	}

	return Result{Test: t, Pass: true, Graph: g}
}

func fail(t *scenario.Test, g *search.Graph, reason string) Result {
	return Result{Test: t, Pass: false, Reason: reason, Graph: g}
}

func allowedActions(scen *scenario.Scenario, t *scenario.Test) []action.Action {
	names := scen.ActionNames()
	out := make([]action.Action, 0, len(names))
	for _, name := range names {
		if t.Blocks(name) {
			continue
		}
		out = append(out, scen.Actions[name])
	}
	return out
}

func historyContains(g *search.Graph, s *state.State, act action.Action) bool {
	node := g.Node(s)
	if node == nil {
		return false
	}
	for _, h := range node.History {
		if h == act {
			return true
		}
	}
	return false
}

func filterStates(states []*state.State, keep func(*state.State) bool) []*state.State {
	out := make([]*state.State, 0, len(states))
	for _, s := range states {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
