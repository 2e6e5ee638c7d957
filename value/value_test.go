package value

import (
	"testing"

	"github.com/plotex-go/plotex/quality"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Bool(false), false},
		{Bool(true), true},
		{Int(0), false},
		{Int(1), true},
		{Str(""), false},
		{Str("x"), true},
		{Set(), false},
		{Set("a"), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("Truthy(%+v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestSetOperations(t *testing.T) {
	a := Set("red", "blue")
	b := Set("blue", "green")

	union := a.SetUnion(b.SetVal()...)
	if !union.SetContains("red") || !union.SetContains("green") || !union.SetContains("blue") {
		t.Fatalf("union incomplete: %v", union.SetVal())
	}

	inter := a.SetIntersect(b)
	if len(inter.SetVal()) != 1 || inter.SetVal()[0] != "blue" {
		t.Fatalf("expected intersection {blue}, got %v", inter.SetVal())
	}

	diff := a.SetDifference(b)
	if len(diff.SetVal()) != 1 || diff.SetVal()[0] != "red" {
		t.Fatalf("expected difference {red}, got %v", diff.SetVal())
	}

	if !a.SetSuperset(Set("blue")) {
		t.Fatal("expected a to be a superset of {blue}")
	}
	if a.SetSuperset(Set("yellow")) {
		t.Fatal("did not expect a to be a superset of {yellow}")
	}
}

func TestFromCoercion(t *testing.T) {
	v, err := From(quality.StringSet, []string{"a", "b"})
	if err != nil {
		t.Fatalf("From: %v", err)
	}
	if len(v.SetVal()) != 2 {
		t.Fatalf("expected 2 members, got %v", v.SetVal())
	}
}

func TestCanonicalOrdering(t *testing.T) {
	if Compare(Bool(false), Bool(true)) >= 0 {
		t.Fatal("expected false < true")
	}
	if Compare(Int(1), Int(2)) >= 0 {
		t.Fatal("expected 1 < 2")
	}
	if Compare(Str("a"), Str("b")) >= 0 {
		t.Fatal("expected a < b")
	}
}
