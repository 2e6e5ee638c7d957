package scenario

import (
	"testing"

	"github.com/plotex-go/plotex/action"
)

func buildSmallScenario(t *testing.T) *Scenario {
	t.Helper()
	b := NewBuilder()
	if err := b.State("Start", map[string]any{"food": true}); err != nil {
		t.Fatalf("State: %v", err)
	}
	findSword, err := action.Set(map[string]any{"sword": true})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.Action("FindSword", findSword); err != nil {
		t.Fatalf("Action: %v", err)
	}
	feedSelf := action.Lose("food")
	if err := b.Action("FeedSelf", feedSelf); err != nil {
		t.Fatalf("Action: %v", err)
	}

	hasSword, err := action.Has(map[string]any{"sword": true})
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if err := b.Test("Test1", NewTest(Can(hasSword))); err != nil {
		t.Fatalf("Test: %v", err)
	}
	return mustBuild(t, b)
}

func mustBuild(t *testing.T, b *Builder) *Scenario {
	t.Helper()
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestBuildAssemblesSchemaAndStates(t *testing.T) {
	scen := buildSmallScenario(t)
	if !scen.Schema.Has("sword") || !scen.Schema.Has("food") {
		t.Fatal("expected merged schema to know both qualities")
	}
	start, ok := scen.States["Start"]
	if !ok || start.Name() != "Start" {
		t.Fatal("expected a named Start state")
	}
	if len(scen.ActionNames()) != 2 {
		t.Fatalf("expected 2 actions, got %v", scen.ActionNames())
	}
}

func TestBuildRejectsDuplicateNames(t *testing.T) {
	b := NewBuilder()
	if err := b.State("Start", map[string]any{"food": true}); err != nil {
		t.Fatalf("State: %v", err)
	}
	if err := b.State("Start", map[string]any{}); err == nil {
		t.Fatal("expected a name collision error")
	}
}

func TestTestDefaultsToNamedStartState(t *testing.T) {
	scen := buildSmallScenario(t)
	test := scen.Tests["Test1"]
	starts := test.StartStates()
	if len(starts) != 1 || starts[0] != scen.States["Start"] {
		t.Fatal("expected the test to default to the scenario's Start state")
	}
}

func TestTestWithMissingStartErrors(t *testing.T) {
	b := NewBuilder()
	if err := b.Test("Lonely", NewTest()); err != nil {
		t.Fatalf("Test: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected an error when no Start state is declared")
	}
}

func TestTestBlockReferencesKnownAction(t *testing.T) {
	b := NewBuilder()
	if err := b.State("Start", map[string]any{}); err != nil {
		t.Fatalf("State: %v", err)
	}
	if err := b.Test("T", NewTest(Block("NoSuchAction"))); err != nil {
		t.Fatalf("Test: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected an error for a block referencing an unknown action")
	}
}
