package diffutil

import (
	"encoding/json"
	"testing"

	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
)

func mustSchema(t *testing.T) *quality.Schema {
	t.Helper()
	return quality.NewSchema(quality.Fragment{
		"lamp":  quality.Bool,
		"food":  quality.Bool,
		"title": quality.String,
		"keys":  quality.StringSet,
		"gold":  quality.Int,
	})
}

func TestToJSONPatchRoundTrips(t *testing.T) {
	schema := mustSchema(t)
	from, err := state.New(schema, map[string]any{"food": true, "title": "novice", "keys": []string{"brass"}, "gold": int64(1)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	to, err := state.New(schema, map[string]any{"lamp": true, "title": "adept", "keys": []string{"brass", "iron"}, "gold": int64(3)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	doc, err := ToJSONPatch(from, to)
	if err != nil {
		t.Fatalf("ToJSONPatch: %v", err)
	}

	var ops []patchOp
	if err := json.Unmarshal(doc, &ops); err != nil {
		t.Fatalf("unmarshal patch: %v", err)
	}
	if len(ops) == 0 {
		t.Fatal("expected at least one patch operation")
	}

	var sawRemoveFood, sawAddLamp bool
	for _, op := range ops {
		if op.Path == "/food" && op.Op == "remove" {
			sawRemoveFood = true
		}
		if op.Path == "/lamp" && op.Op == "add" {
			sawAddLamp = true
		}
	}
	if !sawRemoveFood {
		t.Error("expected a remove op for /food")
	}
	if !sawAddLamp {
		t.Error("expected an add op for /lamp")
	}
}

func TestToJSONPatchNoChanges(t *testing.T) {
	schema := mustSchema(t)
	s, err := state.New(schema, map[string]any{"food": true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	doc, err := ToJSONPatch(s, s)
	if err != nil {
		t.Fatalf("ToJSONPatch: %v", err)
	}
	var ops []patchOp
	if err := json.Unmarshal(doc, &ops); err != nil {
		t.Fatalf("unmarshal patch: %v", err)
	}
	if len(ops) != 0 {
		t.Fatalf("expected no ops for identical states, got %d", len(ops))
	}
}

func TestStringDiffHighlightsChangedSpan(t *testing.T) {
	segs := StringDiff("the novice", "the adept")
	var hasDelete, hasInsert, hasEqual bool
	for _, s := range segs {
		switch s.Op {
		case Delete:
			hasDelete = true
		case Insert:
			hasInsert = true
		case Equal:
			hasEqual = true
		}
	}
	if !hasDelete || !hasInsert || !hasEqual {
		t.Fatalf("expected equal, delete, and insert segments, got %+v", segs)
	}
}

func TestStringDiffIdentical(t *testing.T) {
	segs := StringDiff("same", "same")
	for _, s := range segs {
		if s.Op != Equal {
			t.Fatalf("expected only equal segments for identical strings, got %+v", segs)
		}
	}
}
