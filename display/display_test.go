package display

import (
	"strings"
	"testing"

	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
)

func mustSchema(t *testing.T) *quality.Schema {
	t.Helper()
	return quality.NewSchema(quality.Fragment{
		"lamp":  quality.Bool,
		"gold":  quality.Int,
		"title": quality.String,
		"keys":  quality.StringSet,
	})
}

func TestStateFormatsBareBoolKeyAndSortedKeys(t *testing.T) {
	schema := mustSchema(t)
	s, err := state.New(schema, map[string]any{"lamp": true, "gold": int64(3), "title": "novice"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s = s.WithName("Mine")

	got := State(s, nil)
	if !strings.HasPrefix(got, `<"Mine":`) {
		t.Fatalf("expected name prefix, got %q", got)
	}
	if !strings.Contains(got, "gold=3") {
		t.Fatalf("expected gold=3, got %q", got)
	}
	if !strings.Contains(got, "lamp") || strings.Contains(got, "lamp=") {
		t.Fatalf("expected bare lamp key, got %q", got)
	}
	if !strings.Contains(got, "gold=3 lamp title=novice") {
		t.Fatalf("expected keys in sorted order, got %q", got)
	}
	if !strings.HasSuffix(got, ">") {
		t.Fatalf("expected trailing >, got %q", got)
	}
}

func TestStateSetRendersSortedMembers(t *testing.T) {
	schema := mustSchema(t)
	s, err := state.New(schema, map[string]any{"keys": []string{"iron", "brass"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := State(s.WithName("X"), nil)
	if !strings.Contains(got, "keys=[brass,iron]") {
		t.Fatalf("expected sorted member list, got %q", got)
	}
}

func TestDiffRendersAddedRemovedAndDelta(t *testing.T) {
	schema := mustSchema(t)
	from, _ := state.New(schema, map[string]any{"gold": int64(1), "title": "novice"})
	to, _ := state.New(schema, map[string]any{"lamp": true, "gold": int64(4)})
	to = to.WithName("To")

	got := Diff(to, from, nil)
	if !strings.Contains(got, "+lamp") {
		t.Fatalf("expected +lamp, got %q", got)
	}
	if !strings.Contains(got, "-title") {
		t.Fatalf("expected -title, got %q", got)
	}
	if !strings.Contains(got, "gold=+3") {
		t.Fatalf("expected gold=+3, got %q", got)
	}
}

func TestDiffHighlightsChangedStringSpan(t *testing.T) {
	schema := mustSchema(t)
	from, _ := state.New(schema, map[string]any{"title": "the mine"})
	to, _ := state.New(schema, map[string]any{"title": "the deep mine"})
	to = to.WithName("To")

	got := Diff(to, from, nil)
	if !strings.Contains(got, "title=the deep mine") {
		t.Fatalf("expected uncolored diff to read as the plain new value, got %q", got)
	}
}

func TestColorsForWriterNonFileIsNil(t *testing.T) {
	var b strings.Builder
	if ColorsForWriter(&b) != nil {
		t.Fatal("expected nil colors for a non-*os.File writer")
	}
}
