package diffutil

import (
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// StringOp classifies one segment of a StringDiff.
type StringOp int

const (
	// Equal: the segment is unchanged text.
	Equal StringOp = iota
	// Delete: the segment was present in the old string only.
	Delete
	// Insert: the segment was present in the new string only.
	Insert
)

// StringSegment is one run of a character-level string diff.
type StringSegment struct {
	Op   StringOp
	Text string
}

// StringDiff renders the character-level diff between a changed
// string-valued quality's old and new values, the same
// diff-the-two-runs-then-annotate technique libdiff/object.go uses for
// structural diffs, applied here directly to the two strings instead of
// a rune-mapped field list.
func StringDiff(from, to string) []StringSegment {
	cfg := dmp.New()
	diffs := cfg.DiffMain(from, to, false)
	diffs = cfg.DiffCleanupSemantic(diffs)

	segments := make([]StringSegment, 0, len(diffs))
	for _, d := range diffs {
		var op StringOp
		switch d.Type {
		case dmp.DiffDelete:
			op = Delete
		case dmp.DiffInsert:
			op = Insert
		default:
			op = Equal
		}
		segments = append(segments, StringSegment{Op: op, Text: d.Text})
	}
	return segments
}
