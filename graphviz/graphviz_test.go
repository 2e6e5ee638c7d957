package graphviz

import (
	"strings"
	"testing"

	"github.com/plotex-go/plotex/action"
	"github.com/plotex-go/plotex/scenario"
	"github.com/plotex-go/plotex/search"
	"github.com/plotex-go/plotex/state"
)

func buildGraph(t *testing.T) (*search.Graph, []*state.State) {
	t.Helper()
	b := scenario.NewBuilder()

	findLamp, err := action.Set(map[string]any{"lamp": true})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.Action("FindLamp", findLamp); err != nil {
		t.Fatalf("Action: %v", err)
	}
	if err := b.State("Start", map[string]any{}); err != nil {
		t.Fatalf("State: %v", err)
	}
	scen, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	actions := []action.Action{findLamp}
	g, err := search.Run(scen, []*state.State{scen.States["Start"]}, actions, 0, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return g, g.MaximalStates()
}

func TestWriteEmitsDigraphWithNodesAndEdges(t *testing.T) {
	g, states := buildGraph(t)

	var b strings.Builder
	if err := Write(&b, g, states, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := b.String()

	if !strings.HasPrefix(out, "digraph PlotEx {") {
		t.Fatalf("expected digraph header, got %q", out)
	}
	if !strings.Contains(out, "shape=circle") {
		t.Fatal("expected circle node styling")
	}
	if !strings.Contains(out, "fillcolor=gray75") {
		t.Fatal("expected default gray75 fill without a highlight function")
	}
	if !strings.HasSuffix(strings.TrimRight(out, "\n"), "}") {
		t.Fatalf("expected trailing closing brace, got %q", out)
	}
}

func TestWriteHighlightsSelectedStates(t *testing.T) {
	g, states := buildGraph(t)

	var b strings.Builder
	err := Write(&b, g, states, func(s *state.State) bool { return s.Has("lamp") })
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(b.String(), "fillcolor=forestgreen") {
		t.Fatal("expected at least one highlighted node")
	}
}

func TestWriteMarksTerminalNodesWithHeavierPenwidth(t *testing.T) {
	g, states := buildGraph(t)

	var b strings.Builder
	if err := Write(&b, g, states, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(b.String(), "penwidth=3") {
		t.Fatal("expected a terminal node with penwidth=3")
	}
}
