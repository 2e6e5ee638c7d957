package action

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
	"github.com/plotex-go/plotex/value"
)

// Script is the "general user-function form": a scenario author
// supplies an expr-lang expression instead of a closure compiled into
// the scenario binary. The expression is evaluated against a
// map[string]any snapshot of the state's current qualities (missing
// keys read as the type's zero value) and must return either a bool —
// a guard, passing the state through unchanged on true — or a
// map[string]any of qualities to overlay onto the state, exactly like
// Set. touches declares the schema fragment the script assigns, since
// expr's output type can't be inspected ahead of a run.
func Script(code string, touches quality.Fragment, hint EquivHint) (Action, error) {
	program, err := expr.Compile(code, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("plotex: compiling script action: %w", err)
	}
	frag := make(quality.Fragment, len(touches))
	for k, t := range touches {
		frag[k] = t
	}
	return &scriptAction{
		base:    base{hint: hint, frag: frag},
		code:    code,
		program: program,
	}, nil
}

type scriptAction struct {
	base
	code    string
	program *vm.Program
}

func (a *scriptAction) env(s *state.State) map[string]any {
	env := make(map[string]any, len(s.Schema().Keys()))
	for _, k := range s.Schema().Keys() {
		t, _ := s.Schema().Type(k)
		v, _ := s.Get(k)
		switch t {
		case quality.Bool:
			env[string(k)] = v.BoolVal()
		case quality.Int:
			env[string(k)] = v.IntVal()
		case quality.String:
			env[string(k)] = v.StrVal()
		case quality.StringSet:
			env[string(k)] = v.SetVal()
		}
	}
	return env
}

func (a *scriptAction) Apply(s *state.State) (*state.State, bool) {
	out, err := expr.Run(a.program, a.env(s))
	if err != nil {
		return nil, false
	}
	switch res := out.(type) {
	case bool:
		if !res {
			return nil, false
		}
		return s, true
	case map[string]any:
		vals := s.Values()
		schema := s.Schema()
		for k, raw := range res {
			key := quality.Key(k)
			t, ok := schema.Type(key)
			if !ok {
				return nil, false
			}
			v, err := value.From(t, raw)
			if err != nil {
				return nil, false
			}
			vals[key] = v
		}
		return state.FromValues(schema, vals), true
	default:
		return nil, false
	}
}
