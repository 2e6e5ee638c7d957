// Package debug holds env-var-gated debug flags for the search, action,
// and scenario-assembly layers, following the teacher's per-flag
// boolEnv idiom (PLOTEX_DEBUG_* in place of O_DEBUG_*).
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Search   bool
	Maximal  bool
	Action   bool
	Scenario bool
	Verify   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Search = boolEnv("PLOTEX_DEBUG_SEARCH")
	d.Maximal = boolEnv("PLOTEX_DEBUG_MAXIMAL")
	d.Action = boolEnv("PLOTEX_DEBUG_ACTION")
	d.Scenario = boolEnv("PLOTEX_DEBUG_SCENARIO")
	d.Verify = boolEnv("PLOTEX_DEBUG_VERIFY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Search reports whether frontier-expansion tracing (queue pops, edges
// accepted/rejected) should be logged.
func Search() bool {
	return d.Search
}

// Maximal reports whether the maximal-closure walk should log each
// improvement action it accepts.
func Maximal() bool {
	return d.Maximal
}

// Action reports whether individual Action.Apply calls should log
// their accept/reject outcome.
func Action() bool {
	return d.Action
}

// Scenario reports whether Builder.Build should log schema-fragment
// merging.
func Scenario() bool {
	return d.Scenario
}

// Verify reports whether the test runner should log each successive
// Σ-filtering step.
func Verify() bool {
	return d.Verify
}

// LogAny writes v to stderr as JSON, falling back to %v on marshal
// failure.
func LogAny(v any) {
	enc, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(enc)
	os.Stderr.Write([]byte("\n"))
}
