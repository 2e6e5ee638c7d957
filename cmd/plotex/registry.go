package main

import (
	"fmt"

	"github.com/plotex-go/plotex/examples/testscenario"
	"github.com/plotex-go/plotex/scenario"
)

// scenarios maps a built-in scenario name to its builder. The CLI's
// scenario-authoring surface is Go code (scenario.Builder), not a file
// format, so the command line names one of the scenarios compiled into
// this binary rather than pointing at a document to parse.
var scenarios = map[string]func() (*scenario.Scenario, error){
	"cave": testscenario.Build,
}

func lookupScenario(name string) (*scenario.Scenario, error) {
	build, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("%w: no such scenario %q", scenario.ErrName, name)
	}
	return build()
}
