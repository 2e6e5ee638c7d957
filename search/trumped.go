package search

import "github.com/plotex-go/plotex/state"

// PreferredSetLimit bounds the quadratic trumped-state computation of
// §4.4: above this many results, Trumped is skipped entirely rather
// than paying the O(n^2) domination check.
const PreferredSetLimit = 20

// Trumped returns the set (as state keys) of results strictly dominated
// by some other result in the same slice, or nil if len(results) >
// PreferredSetLimit.
func Trumped(results []*state.State) map[string]bool {
	if len(results) > PreferredSetLimit {
		return nil
	}
	trumped := make(map[string]bool, len(results))
	for i, a := range results {
		if trumped[a.Key()] {
			continue
		}
		for j, b := range results {
			if i == j || trumped[b.Key()] {
				continue
			}
			if state.Less(a, b) {
				trumped[a.Key()] = true
				break
			}
		}
	}
	return trumped
}

// NonTrumpedMaximals returns g's maximal states that survive the
// trumped check, reverse-discovery-ordered — the set `--withhold` seeds
// its second pass from.
func (g *Graph) NonTrumpedMaximals() []*state.State {
	maxes := g.MaximalStates()
	trumped := Trumped(maxes)
	out := make([]*state.State, 0, len(maxes))
	for i := len(maxes) - 1; i >= 0; i-- {
		s := maxes[i]
		if trumped != nil && trumped[s.Key()] {
			continue
		}
		out = append(out, s)
	}
	return out
}
