package state

import "testing"

func TestDiffOmitsUnchanged(t *testing.T) {
	schema := testSchema(t)
	a := mustState(t, schema, map[string]any{"sword": true, "food": 5, "keys": []string{"red", "blue"}})
	b := mustState(t, schema, map[string]any{"sword": true, "food": 2, "keys": []string{"blue", "green"}})

	entries := Diff(a, b)
	byKey := map[string]DiffEntry{}
	for _, e := range entries {
		byKey[string(e.Key)] = e
	}
	if _, ok := byKey["sword"]; ok {
		t.Fatal("unchanged bool quality must be omitted")
	}
	food, ok := byKey["food"]
	if !ok || food.Kind != Changed || food.Delta != 3 {
		t.Fatalf("expected food changed by +3, got %+v ok=%v", food, ok)
	}
	keys, ok := byKey["keys"]
	if !ok || keys.Kind != SetChanged {
		t.Fatalf("expected keys set-changed, got %+v ok=%v", keys, ok)
	}
	if len(keys.Added) != 1 || keys.Added[0] != "red" {
		t.Fatalf("expected +red, got %v", keys.Added)
	}
	if len(keys.Lost) != 1 || keys.Lost[0] != "green" {
		t.Fatalf("expected -green, got %v", keys.Lost)
	}
}

func TestDiffAddedRemovedBool(t *testing.T) {
	schema := testSchema(t)
	a := mustState(t, schema, map[string]any{"sword": true})
	b := mustState(t, schema, map[string]any{})

	entries := Diff(a, b)
	if len(entries) != 1 || entries[0].Kind != Added || entries[0].Key != "sword" {
		t.Fatalf("expected sword added, got %+v", entries)
	}

	entries = Diff(b, a)
	if len(entries) != 1 || entries[0].Kind != Removed || entries[0].Key != "sword" {
		t.Fatalf("expected sword removed, got %+v", entries)
	}
}
