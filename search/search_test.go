package search

import (
	"errors"
	"testing"

	"github.com/plotex-go/plotex/action"
	"github.com/plotex-go/plotex/scenario"
	"github.com/plotex-go/plotex/state"
)

func buildCaveScenario(t *testing.T) (*scenario.Scenario, []action.Action) {
	t.Helper()
	b := scenario.NewBuilder()

	findLamp, err := action.Set(map[string]any{"lamp": true})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	hasLamp, err := action.Has(map[string]any{"lamp": true})
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	setUnderground, err := action.Set(map[string]any{"underground": true})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	enterCave := action.Chain(hasLamp, setUnderground)
	feedSelf := action.Lose("food")

	for name, a := range map[string]action.Action{
		"FindLamp":  findLamp,
		"EnterCave": enterCave,
		"FeedSelf":  feedSelf,
	} {
		if err := b.Action(name, a); err != nil {
			t.Fatalf("Action: %v", err)
		}
	}
	if err := b.State("Start", map[string]any{"food": true}); err != nil {
		t.Fatalf("State: %v", err)
	}
	scen, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	actions := make([]action.Action, 0, len(scen.Actions))
	for _, name := range scen.ActionNames() {
		actions = append(actions, scen.Actions[name])
	}
	return scen, actions
}

func TestRunReachesUndergroundViaLampThenFood(t *testing.T) {
	scen, actions := buildCaveScenario(t)
	start := scen.States["Start"]

	g, err := Run(scen, []*state.State{start}, actions, 0, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var foundUnderground, foundFoodless bool
	for _, s := range g.MaximalStates() {
		if s.Has("underground") {
			foundUnderground = true
		}
		if !s.Has("food") {
			foundFoodless = true
		}
	}
	if !foundUnderground {
		t.Fatal("expected a reachable maximal with underground set")
	}
	if !foundFoodless {
		t.Fatal("expected a reachable maximal without food")
	}
}

func TestRunRecordsHistoryOnMaximals(t *testing.T) {
	scen, actions := buildCaveScenario(t)
	start := scen.States["Start"]
	g, err := Run(scen, []*state.State{start}, actions, 0, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, s := range g.MaximalStates() {
		node := g.Node(s)
		if node == nil || !node.IsMaximal {
			t.Fatalf("expected %v to be marked maximal", s)
		}
		if s.Has("food") {
			continue
		}
		fedSelf := false
		for _, a := range node.History {
			if a.Name() == "FeedSelf" {
				fedSelf = true
			}
		}
		if !fedSelf {
			t.Fatalf("expected the foodless maximal's history to include FeedSelf, got %v", node.History)
		}
	}
}

func TestRunRespectsGenerationLimit(t *testing.T) {
	scen, actions := buildCaveScenario(t)
	start := scen.States["Start"]
	_, err := Run(scen, []*state.State{start}, actions, 1, false)
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
}

func TestTrumpedSkipsAboveLimit(t *testing.T) {
	scen, _ := buildCaveScenario(t)
	states := make([]*state.State, PreferredSetLimit+1)
	for i := range states {
		states[i] = state.Empty(scen.Schema)
	}
	if Trumped(states) != nil {
		t.Fatal("expected Trumped to be skipped above the limit")
	}
}
