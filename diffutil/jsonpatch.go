// Package diffutil renders a state.Diff as external interchange
// formats: an RFC 6902 JSON Patch document for tooling outside PlotEx,
// and a character-level diff of a changed string quality for -d/--diff
// output, grounded on libdiff/object.go's diffmatchpatch technique.
package diffutil

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
	"github.com/plotex-go/plotex/value"
)

type patchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// ToJSONPatch renders the transition from "from" to "to" as an RFC 6902
// JSON Patch document. The result is validated by applying it, via
// evanphx/json-patch, to from's own JSON projection and checking that
// the result matches to's — catching a malformed patch before it ever
// reaches a caller.
func ToJSONPatch(from, to *state.State) ([]byte, error) {
	entries := state.Diff(to, from)
	ops := make([]patchOp, 0, len(entries))
	for _, e := range entries {
		path := "/" + string(e.Key)
		v, ok := to.Get(e.Key)
		if !ok {
			ops = append(ops, patchOp{Op: "remove", Path: path})
			continue
		}
		ops = append(ops, patchOp{Op: opFor(from, e.Key), Path: path, Value: rawValue(v)})
	}

	doc, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("plotex: encoding json patch: %w", err)
	}

	fromDoc, err := toJSONDoc(from)
	if err != nil {
		return nil, err
	}
	toDoc, err := toJSONDoc(to)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.DecodePatch(doc)
	if err != nil {
		return nil, fmt.Errorf("plotex: decoding generated json patch: %w", err)
	}
	applied, err := patch.Apply(fromDoc)
	if err != nil {
		return nil, fmt.Errorf("plotex: applying generated json patch: %w", err)
	}
	equal, err := jsonEqual(applied, toDoc)
	if err != nil {
		return nil, err
	}
	if !equal {
		return nil, fmt.Errorf("plotex: generated json patch does not reproduce the target state")
	}
	return doc, nil
}

func opFor(from *state.State, k quality.Key) string {
	if from.Has(k) {
		return "replace"
	}
	return "add"
}

func rawValue(v value.Value) any {
	switch v.Type() {
	case quality.Bool:
		return v.BoolVal()
	case quality.Int:
		return v.IntVal()
	case quality.String:
		return v.StrVal()
	case quality.StringSet:
		return v.SetVal()
	default:
		return nil
	}
}

func toJSONDoc(s *state.State) ([]byte, error) {
	obj := make(map[string]any, len(s.Keys()))
	for _, k := range s.Keys() {
		v, _ := s.Get(k)
		obj[string(k)] = rawValue(v)
	}
	return json.Marshal(obj)
}

func jsonEqual(a, b []byte) (bool, error) {
	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false, err
	}
	return fmt.Sprint(av) == fmt.Sprint(bv), nil
}
