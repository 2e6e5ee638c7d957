// Package search implements the BFS-with-maximization engine of §4.3:
// a maximal-closure walk folds every improving action into a single
// representative state per equivalence class, and a FIFO frontier
// expansion explores the remaining, potentially class-changing actions
// between those classes. Grounded on original_source/plotex.py's
// Graph/GraphNode/find_maximal_state.
package search

import (
	"fmt"

	"github.com/plotex-go/plotex/action"
	"github.com/plotex-go/plotex/debug"
	"github.com/plotex-go/plotex/scenario"
	"github.com/plotex-go/plotex/state"
)

// Edge records the action chain that carries one maximal state to
// another (or that carries an intermediate state to its eventual
// maximal, in a Node's MaximalChain).
type Edge struct {
	Chain []action.Action
	State *state.State
}

// Node is the per-state bookkeeping a Graph keeps, separate from State
// itself since State is immutable and shared across runs.
type Node struct {
	State *state.State

	// Maximal is the representative state of State's equivalence
	// class, nil only while Run is still walking the chain that
	// discovers it.
	Maximal      *state.State
	IsMaximal    bool
	MaximalChain []action.Action

	// History, Children, and Parents are populated only for maximal
	// nodes, during frontier expansion; an intermediate state visited
	// only by a maximal-closure walk keeps its zero values, matching
	// the original's GraphNode defaults.
	History  []action.Action
	Children []Edge
	Parents  []Edge

	Ancestors map[string]struct{}
}

// Graph holds the full result of one Run: the node table for every
// state visited (maximal or intermediate) and the maximal states in
// discovery order.
type Graph struct {
	Scenario    *scenario.Scenario
	StartStates []*state.State

	nodes    map[string]*Node
	order    []string
	maxOrder []string
}

func newGraph(scen *scenario.Scenario, starts []*state.State) *Graph {
	return &Graph{
		Scenario:    scen,
		StartStates: starts,
		nodes:       make(map[string]*Node),
	}
}

// Node returns the bookkeeping for s, or nil if s was never visited.
func (g *Graph) Node(s *state.State) *Node {
	return g.nodes[s.Key()]
}

// States returns every state visited during the run (both maximal and
// intermediate), in discovery order — the "Σ" the test runner filters.
func (g *Graph) States() []*state.State {
	out := make([]*state.State, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, g.nodes[k].State)
	}
	return out
}

// MaximalStates returns the maximal states reached, in the order they
// were popped from the frontier queue (discovery order).
func (g *Graph) MaximalStates() []*state.State {
	out := make([]*state.State, 0, len(g.maxOrder))
	for _, k := range g.maxOrder {
		out = append(out, g.nodes[k].State)
	}
	return out
}

// Run explores the scenario's reachable states from starts using
// actions, per §4.3. It always returns a valid, internally consistent
// Graph; if the generation limit L is reached before the frontier
// empties, it also returns ErrLimitReached (check with errors.Is) with
// the graph left in its partial-but-consistent state.
func Run(scen *scenario.Scenario, starts []*state.State, actions []action.Action, limit int, noopt bool) (*Graph, error) {
	if limit <= 0 {
		limit = DefaultGenerationLimit
	}
	improve, change := actions, actions
	if !noopt {
		improve = filterActions(actions, func(a action.Action) bool { return a.Equiv() != action.Loss })
		change = filterActions(actions, func(a action.Action) bool {
			h := a.Equiv()
			return h == action.Loss || h == action.Unknown
		})
	}

	g := newGraph(scen, starts)
	seen := make(map[string]struct{})
	var queue []*state.State

	for _, s := range starts {
		startNode := g.findMaximalState(s, improve)
		max := startNode.Maximal
		if _, dup := seen[max.Key()]; dup {
			continue
		}
		seen[max.Key()] = struct{}{}
		queue = append(queue, max)
		g.nodes[max.Key()].History = append([]action.Action{}, startNode.MaximalChain...)
	}

	var limitErr error
	for len(queue) > 0 {
		if len(seen) >= limit {
			limitErr = fmt.Errorf("%w: stopped after %d distinct maximal states", ErrLimitReached, limit)
			break
		}
		old := queue[0]
		queue = queue[1:]
		oldNode := g.nodes[old.Key()]
		g.maxOrder = append(g.maxOrder, old.Key())
		if debug.Search() {
			debug.Logf("search: pop maximal %s\n", old)
		}

		for _, c := range change {
			next, ok := c.Apply(old)
			if !ok {
				continue
			}
			midNode := g.findMaximalState(next, improve)
			maxState := midNode.Maximal
			if state.Equal(maxState, old) {
				if debug.Search() {
					debug.Logf("search: %s via %s: no progress\n", old.Key(), c.Name())
				}
				continue
			}
			if _, isAncestor := oldNode.Ancestors[maxState.Key()]; isAncestor {
				if debug.Search() {
					debug.Logf("search: %s via %s: would revisit ancestor\n", old.Key(), c.Name())
				}
				continue
			}

			chain := append([]action.Action{c}, midNode.MaximalChain...)
			maxNode := g.nodes[maxState.Key()]

			if _, already := seen[maxState.Key()]; already {
				mergeAncestors(maxNode, oldNode, old)
			} else {
				queue = append(queue, maxState)
				seen[maxState.Key()] = struct{}{}
				maxNode.History = append(append([]action.Action{}, oldNode.History...), chain...)
				mergeAncestors(maxNode, oldNode, old)
			}

			oldNode.Children = append(oldNode.Children, Edge{Chain: chain, State: maxState})
			maxNode.Parents = append(maxNode.Parents, Edge{Chain: chain, State: old})
		}
	}

	return g, limitErr
}

func mergeAncestors(dst, src *Node, addedBy *state.State) {
	for k := range src.Ancestors {
		dst.Ancestors[k] = struct{}{}
	}
	dst.Ancestors[addedBy.Key()] = struct{}{}
}

// findMaximalState walks the chain of strictly-improving actions from s
// until no improvement action applies, installing every visited state
// in the node table annotated with the suffix chain to the common
// maximal, and returns s's (now-resolved) node.
func (g *Graph) findMaximalState(s *state.State, improve []action.Action) *Node {
	if n, ok := g.nodes[s.Key()]; ok {
		return n
	}

	var stateChain []*state.State
	var actChain []action.Action
	cur := s

	for {
		node := &Node{State: cur, Ancestors: map[string]struct{}{}}
		g.nodes[cur.Key()] = node
		g.order = append(g.order, cur.Key())
		stateChain = append(stateChain, cur)

		found := false
		for _, a := range improve {
			next, ok := a.Apply(cur)
			if !ok || state.Equal(next, cur) || !state.Less(cur, next) {
				continue
			}
			actChain = append(actChain, a)
			found = true
			if debug.Maximal() {
				debug.Logf("maximal: %s accepted, advancing to %s\n", a.Name(), next)
			}

			if existing, ok := g.nodes[next.Key()]; ok {
				pos := 0
				for _, st := range stateChain {
					n := g.nodes[st.Key()]
					n.Maximal = existing.Maximal
					n.IsMaximal = existing.IsMaximal
					n.MaximalChain = append(append([]action.Action{}, actChain[pos:]...), existing.MaximalChain...)
					pos++
				}
				return g.nodes[s.Key()]
			}
			cur = next
			break
		}

		if !found {
			pos := 0
			for _, st := range stateChain {
				n := g.nodes[st.Key()]
				n.Maximal = cur
				n.MaximalChain = append([]action.Action{}, actChain[pos:]...)
				pos++
			}
			g.nodes[cur.Key()].IsMaximal = true
			return g.nodes[s.Key()]
		}
	}
}

func filterActions(actions []action.Action, keep func(action.Action) bool) []action.Action {
	out := make([]action.Action, 0, len(actions))
	for _, a := range actions {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
