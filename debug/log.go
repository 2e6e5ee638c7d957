package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/plotex-go/plotex/display"
	"github.com/plotex-go/plotex/state"
)

type JSON any

// Logf writes a trace line to stderr, pretty-printing map/slice args as
// indented JSON and *state.State args via display.State.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *state.State:
			args[i] = display.State(x, nil)
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
