package verify

import (
	"testing"

	"github.com/plotex-go/plotex/examples/testscenario"
)

func TestScenarioAssertions(t *testing.T) {
	scen, err := testscenario.Build()
	if err != nil {
		t.Fatalf("testscenario.Build: %v", err)
	}

	for _, name := range []string{"Test1", "Test2", "Test3", "Test4", "Test5", "Test6", "Test7"} {
		test, ok := scen.Tests[name]
		if !ok {
			t.Fatalf("expected scenario to declare %s", name)
		}
		result := Run(scen, test)
		if !result.Pass {
			t.Fatalf("%s expected to pass, failed: %s", name, result.Reason)
		}
	}
}
