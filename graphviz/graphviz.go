// Package graphviz emits the DOT text of §6.3 from a completed
// *search.Graph: one filled circle per result state, green where it
// passes the caller's filter/history criteria and gray otherwise, a
// heavier outline on terminal (no-children) states, and a labeled edge
// per child transition — grounded on original_source/plotex.py's
// Graph.writegv.
package graphviz

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/plotex-go/plotex/action"
	"github.com/plotex-go/plotex/search"
	"github.com/plotex-go/plotex/state"
)

// Highlight decides whether a result state should be colored in (it
// passed the caller's active filter/history selection), mirroring
// writegv's second, filtered showlist() pass.
type Highlight func(s *state.State) bool

// Write renders states (in the order they should be numbered) as a DOT
// digraph named "PlotEx" to w. highlight, if non-nil, selects the
// subset drawn in forestgreen; all others are gray75.
func Write(w io.Writer, g *search.Graph, states []*state.State, highlight Highlight) error {
	names := make(map[string]string, len(states))
	for i, s := range states {
		names[s.Key()] = strconv.Itoa(i + 1)
	}

	if _, err := io.WriteString(w, "digraph PlotEx {\n\n"); err != nil {
		return err
	}
	for _, s := range states {
		node := g.Node(s)
		if node == nil {
			continue
		}
		penwidth := 1
		if len(node.Children) == 0 {
			penwidth = 3
		}
		color := "gray75"
		if highlight != nil && highlight(s) {
			color = "forestgreen"
		}
		name := names[s.Key()]
		if _, err := fmt.Fprintf(w, "# %s\n", s.Key()); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\"%s\" [ label=\"\", shape=circle, width=0.2, style=filled, fillcolor=%s, penwidth=%d ];\n\n", name, color, penwidth); err != nil {
			return err
		}
		for _, edge := range node.Children {
			childName, ok := names[edge.State.Key()]
			if !ok {
				continue
			}
			label := edgeLabel(edge.Chain)
			if _, err := fmt.Fprintf(w, "  \"%s\" -> \"%s\" [ label=\"%s\" ];\n", name, childName, label); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func edgeLabel(chain []action.Action) string {
	names := make([]string, len(chain))
	for i, a := range chain {
		names[i] = a.Name()
	}
	return strings.Join(names, "\\n")
}
