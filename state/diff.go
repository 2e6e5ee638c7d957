package state

import (
	"sort"
	"strings"

	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/value"
)

// DiffKind classifies one entry of a structured Diff, matching
// printdiff's four notations: a bare key added, a key removed, a
// changed scalar, or a changed set.
type DiffKind int

const (
	// Added: a bool key is present in the subject but not in the
	// reference ("+k").
	Added DiffKind = iota
	// Removed: a bool or string key is present in the reference but not
	// the subject ("-k").
	Removed
	// Changed: an int value differs, including one present on only one
	// side ("k=+n"/"k=-n"), or a string key is present in the subject
	// with a value that is new or differs from the reference ("k=v").
	Changed
	// SetChanged: a set-valued quality gained and/or lost members
	// ("k=[+a,-b]").
	SetChanged
)

// DiffEntry is one (key, kind, value) triple of a structured diff. For
// Changed on an int key, Delta holds new-old. For SetChanged, Added and
// Lost hold the member deltas.
type DiffEntry struct {
	Key   quality.Key
	Kind  DiffKind
	Value value.Value
	Delta int64
	Added []string
	Lost  []string
}

// Diff returns the structured delta of s relative to other: the list of
// (key, kind, value) entries describing how s differs from other,
// omitting unchanged keys. This is the core's contract for the
// boundary-only printdiff/display text rendering (§4.1, §6.4).
func Diff(s, other *State) []DiffEntry {
	keys := make(map[quality.Key]struct{}, len(s.vals)+len(other.vals))
	for k := range s.vals {
		keys[k] = struct{}{}
	}
	for k := range other.vals {
		keys[k] = struct{}{}
	}
	sorted := make([]quality.Key, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToUpper(string(sorted[i])) < strings.ToUpper(string(sorted[j]))
	})

	var entries []DiffEntry
	for _, k := range sorted {
		sv, sok := s.vals[k]
		ov, ook := other.vals[k]
		t, _ := s.schema.Type(k)
		switch t {
		case quality.Bool:
			switch {
			case sok && !ook:
				entries = append(entries, DiffEntry{Key: k, Kind: Added, Value: sv})
			case ook && !sok:
				entries = append(entries, DiffEntry{Key: k, Kind: Removed, Value: ov})
			}
		case quality.String:
			switch {
			case sok && (!ook || sv.StrVal() != ov.StrVal()):
				entries = append(entries, DiffEntry{Key: k, Kind: Changed, Value: sv})
			case ook && !sok:
				entries = append(entries, DiffEntry{Key: k, Kind: Removed, Value: ov})
			}
		case quality.Int:
			sn, on := int64(0), int64(0)
			if sok {
				sn = sv.IntVal()
			}
			if ook {
				on = ov.IntVal()
			}
			if sn != on {
				entries = append(entries, DiffEntry{Key: k, Kind: Changed, Delta: sn - on})
			}
		case quality.StringSet:
			var sset, oset value.Value
			if sok {
				sset = sv
			} else {
				sset = value.Set()
			}
			if ook {
				oset = ov
			} else {
				oset = value.Set()
			}
			added := sset.SetDifference(oset).SetVal()
			lost := oset.SetDifference(sset).SetVal()
			if len(added) != 0 || len(lost) != 0 {
				entries = append(entries, DiffEntry{Key: k, Kind: SetChanged, Added: added, Lost: lost})
			}
		}
	}
	return entries
}
