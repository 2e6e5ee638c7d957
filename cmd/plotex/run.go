package main

import (
	"fmt"
	"os"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/plotex-go/plotex/action"
	"github.com/plotex-go/plotex/diffutil"
	"github.com/plotex-go/plotex/display"
	"github.com/plotex-go/plotex/graphviz"
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/scenario"
	"github.com/plotex-go/plotex/search"
	"github.com/plotex-go/plotex/state"
	"github.com/plotex-go/plotex/value"
	"github.com/plotex-go/plotex/verify"
)

func runMain(cfg *RunConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Run.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: scenario name required", cli.ErrUsage)
	}
	scen, err := lookupScenario(args[0])
	if err != nil {
		return err
	}

	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		}
	}

	if len(cfg.Tests) > 0 || cfg.AllTests {
		return runTests(cfg, cc, scen)
	}
	return runExplore(cfg, cc, scen)
}

func runTests(cfg *RunConfig, cc *cli.Context, scen *scenario.Scenario) error {
	names := cfg.Tests
	if cfg.AllTests {
		names = names[:0]
		for name := range scen.Tests {
			names = append(names, name)
		}
	}
	failed := 0
	for _, name := range names {
		t, ok := scen.Tests[name]
		if !ok {
			return fmt.Errorf("%w: no such test %q", scenario.ErrName, name)
		}
		result := verify.Run(scen, t)
		if result.Pass {
			fmt.Fprintf(cc.Out, "%s: pass\n", name)
			continue
		}
		failed++
		fmt.Fprintf(cc.Out, "%s: FAIL: %s\n", name, result.Reason)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d test(s) failed", failed, len(names))
	}
	return nil
}

func runExplore(cfg *RunConfig, cc *cli.Context, scen *scenario.Scenario) error {
	starts, err := startStates(cfg, scen)
	if err != nil {
		return err
	}
	actions, err := selectedActions(scen, cfg.Block)
	if err != nil {
		return err
	}
	limit := search.DefaultGenerationLimit
	if cfg.genLimitSet {
		limit = cfg.GenLimit
	}

	withheld, firstPass, err := splitWithheld(scen, actions, cfg.Withhold)
	if err != nil {
		return err
	}

	g, runErr := search.Run(scen, starts, firstPass, limit, cfg.NoOpt)
	if runErr != nil && g == nil {
		return runErr
	}
	if len(withheld) > 0 {
		survivors := g.NonTrumpedMaximals()
		g, runErr = search.Run(scen, survivors, append(firstPass, withheld...), limit, cfg.NoOpt)
	}
	if runErr != nil {
		fmt.Fprintf(cc.Out, "warning: %v\n", runErr)
	}

	results := resultStates(cfg, g)
	results = applyFilters(cfg, g, results)

	if cfg.Count {
		fmt.Fprintf(cc.Out, "%d state(s), %d maximal\n", len(results), len(g.MaximalStates()))
		return nil
	}

	colors := display.ColorsForWriter(cc.Out)
	meet := meetOf(results)
	for _, s := range results {
		printState(cfg, cc, g, s, meet, colors)
	}

	if cfg.GraphFile != "" {
		return writeGraph(cfg, g, results)
	}
	return nil
}

func startStates(cfg *RunConfig, scen *scenario.Scenario) ([]*state.State, error) {
	names := cfg.Starts
	if len(names) == 0 {
		names = []string{"Start"}
	}
	out := make([]*state.State, 0, len(names))
	for _, name := range names {
		s, ok := scen.States[name]
		if !ok {
			return nil, fmt.Errorf("%w: no such state %q", scenario.ErrName, name)
		}
		if len(cfg.StartWith) > 0 {
			vals := s.Values()
			for _, q := range cfg.StartWith {
				key := quality.Key(q)
				if !scen.Schema.Has(key) {
					return nil, fmt.Errorf("%w: no such quality %q", scenario.ErrName, q)
				}
				vals[key] = value.Bool(true)
			}
			s = state.FromValues(scen.Schema, vals).WithName(s.Name())
		}
		out = append(out, s)
	}
	return out, nil
}

func selectedActions(scen *scenario.Scenario, blocked []string) ([]action.Action, error) {
	blockSet := make(map[string]bool, len(blocked))
	for _, b := range blocked {
		if _, ok := scen.Actions[b]; !ok {
			return nil, fmt.Errorf("%w: no such action %q", scenario.ErrName, b)
		}
		blockSet[b] = true
	}
	out := make([]action.Action, 0, len(scen.Actions))
	for _, name := range scen.ActionNames() {
		if blockSet[name] {
			continue
		}
		out = append(out, scen.Actions[name])
	}
	return out, nil
}

func splitWithheld(scen *scenario.Scenario, actions []action.Action, withhold []string) ([]action.Action, []action.Action, error) {
	if len(withhold) == 0 {
		return nil, actions, nil
	}
	withholdSet := make(map[string]bool, len(withhold))
	for _, w := range withhold {
		if _, ok := scen.Actions[w]; !ok {
			return nil, nil, fmt.Errorf("%w: no such action %q", scenario.ErrName, w)
		}
		withholdSet[w] = true
	}
	var kept, held []action.Action
	for _, a := range actions {
		if withholdSet[a.Name()] {
			held = append(held, a)
		} else {
			kept = append(kept, a)
		}
	}
	return held, kept, nil
}

func resultStates(cfg *RunConfig, g *search.Graph) []*state.State {
	if cfg.ShowAll || cfg.ShowMed {
		return g.States()
	}
	return g.MaximalStates()
}

func applyFilters(cfg *RunConfig, g *search.Graph, states []*state.State) []*state.State {
	out := states
	for _, q := range cfg.Filter {
		key := quality.Key(q)
		out = keep(out, func(s *state.State) bool { return s.Has(key) })
	}
	for _, actName := range cfg.History {
		out = keep(out, func(s *state.State) bool {
			node := g.Node(s)
			if node == nil {
				return false
			}
			for _, h := range node.History {
				if h.Name() == actName {
					return true
				}
			}
			return false
		})
	}
	return out
}

func keep(states []*state.State, pred func(*state.State) bool) []*state.State {
	out := make([]*state.State, 0, len(states))
	for _, s := range states {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}

func meetOf(states []*state.State) *state.State {
	if len(states) == 0 {
		return nil
	}
	m := states[0]
	for _, s := range states[1:] {
		m = state.Meet(m, s)
	}
	return m
}

func printState(cfg *RunConfig, cc *cli.Context, g *search.Graph, s, meet *state.State, colors *display.Colors) {
	switch {
	case cfg.Patch && meet != nil:
		patch, err := diffutil.ToJSONPatch(meet, s)
		if err != nil {
			fmt.Fprintf(cc.Out, "warning: %s: %v\n", s.Name(), err)
		} else {
			cc.Out.Write(patch)
			fmt.Fprintln(cc.Out)
		}
	case cfg.Diff && meet != nil:
		fmt.Fprintln(cc.Out, display.Diff(s, meet, colors))
	default:
		fmt.Fprintln(cc.Out, display.State(s, colors))
	}
	node := g.Node(s)
	if node == nil {
		return
	}
	if cfg.ShowIn || cfg.ShowAll {
		for _, p := range node.Parents {
			fmt.Fprintf(cc.Out, "  in: %s\n", display.State(p.State, colors))
		}
	}
	if cfg.ShowOut || cfg.ShowAll {
		for _, c := range node.Children {
			fmt.Fprintf(cc.Out, "  out: %s\n", display.State(c.State, colors))
		}
	}
}

func writeGraph(cfg *RunConfig, g *search.Graph, results []*state.State) error {
	f, err := os.OpenFile(cfg.GraphFile, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	resultSet := make(map[string]bool, len(results))
	for _, s := range results {
		resultSet[s.Key()] = true
	}
	return graphviz.Write(f, g, g.MaximalStates(), func(s *state.State) bool { return resultSet[s.Key()] })
}
