package quality

import "testing"

func TestSenseOf(t *testing.T) {
	if Key("food").SenseOf() != Positive {
		t.Fatal("expected positive sense")
	}
	if Key("_burden").SenseOf() != Negative {
		t.Fatal("expected negative sense")
	}
}

func TestInfer(t *testing.T) {
	f, err := Infer(map[string]any{
		"sword": true,
		"food":  3,
		"title": "knight",
		"keys":  []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	want := map[string]Type{"sword": Bool, "food": Int, "title": String, "keys": StringSet}
	for k, typ := range want {
		if f[Key(k)] != typ {
			t.Fatalf("key %q: got %v want %v", k, f[Key(k)], typ)
		}
	}
}

func TestInferRejectsUnsupportedType(t *testing.T) {
	if _, err := Infer(map[string]any{"bad": 3.14}); err == nil {
		t.Fatal("expected schema error for float value")
	}
}

func TestMergeConflict(t *testing.T) {
	_, err := Merge(
		Fragment{"food": Bool},
		Fragment{"food": Int},
	)
	if err == nil {
		t.Fatal("expected inconsistent-type schema error")
	}
}

func TestMergeConsistent(t *testing.T) {
	s, err := Merge(
		Fragment{"food": Int},
		Fragment{"food": Int, "sword": Bool},
	)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !s.Has("food") || !s.Has("sword") {
		t.Fatal("expected both keys present")
	}
}
