// Package display renders a state.State as the printed text format of
// §6.4 — `<"Name": k1 k2=v k3=[a,b]>`, or its diff form — with optional
// ANSI coloring at a TTY, following the isatty-gated color opt-in of
// cmd/o/configs.go and the Colors palette technique of
// encode/encode_colors.go.
package display

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/plotex-go/plotex/diffutil"
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
)

// Attr names one lexical role in the printed format, mirroring
// encode.ColorAttr's scheme of coloring by structural role rather than
// by value.
type Attr int

const (
	NameAttr Attr = iota
	KeyAttr
	ValueAttr
	AddedAttr
	RemovedAttr
	PunctAttr
)

// Colors maps an Attr to a Sprint-style colorizer. A nil Colors (or a
// nil entry) renders plain text.
type Colors struct {
	Map map[Attr]func(a ...any) string
}

// NewColors returns the default palette, in the spirit of
// encode.NewColors: muted structural punctuation, green for added
// quantities, red for removed.
func NewColors() *Colors {
	return &Colors{Map: map[Attr]func(a ...any) string{
		NameAttr:    color.New(color.FgHiWhite, color.Bold).SprintFunc(),
		KeyAttr:     color.New(color.FgCyan).SprintFunc(),
		ValueAttr:   color.New(color.FgGreen).SprintFunc(),
		AddedAttr:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		RemovedAttr: color.New(color.FgRed, color.Bold).SprintFunc(),
		PunctAttr:   color.New(color.FgHiBlack).SprintFunc(),
	}}
}

func (c *Colors) paint(a Attr, s string) string {
	if c == nil || c.Map[a] == nil {
		return s
	}
	return c.Map[a](s)
}

// ColorsForWriter returns NewColors() when w is a terminal, nil
// (uncolored) otherwise — the same isatty-gated default cmd/o/configs.go
// uses before reaching for EncodeColors.
func ColorsForWriter(w any) *Colors {
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return NewColors()
	}
	return nil
}

// State renders s in the §6.4 format: `<"Name": k1 k2=v k3=[a,b]>`,
// keys sorted case-insensitively, a bare key for a true boolean, and
// sorted-member list syntax for sets.
func State(s *state.State, c *Colors) string {
	keys := sortedKeys(s.Keys())
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := s.Get(k)
		switch v.Type() {
		case quality.Bool:
			parts = append(parts, c.paint(KeyAttr, string(k)))
		case quality.Int:
			parts = append(parts, c.paint(KeyAttr, string(k))+c.paint(PunctAttr, "=")+c.paint(ValueAttr, strconv.FormatInt(v.IntVal(), 10)))
		case quality.String:
			parts = append(parts, c.paint(KeyAttr, string(k))+c.paint(PunctAttr, "=")+c.paint(ValueAttr, v.StrVal()))
		case quality.StringSet:
			members := v.SetVal()
			parts = append(parts, c.paint(KeyAttr, string(k))+c.paint(PunctAttr, "=")+c.paint(PunctAttr, "[")+c.paint(ValueAttr, strings.Join(members, ","))+c.paint(PunctAttr, "]"))
		}
	}
	var b strings.Builder
	b.WriteString(c.paint(PunctAttr, "<"))
	b.WriteString(c.paint(PunctAttr, "\""))
	b.WriteString(c.paint(NameAttr, s.Name()))
	b.WriteString(c.paint(PunctAttr, "\":"))
	if len(parts) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(parts, " "))
	}
	b.WriteString(c.paint(PunctAttr, ">"))
	return b.String()
}

// Diff renders the structured delta from other to s using the §6.4
// diff notation: `+k` / `-k` for bool presence, `k=+n` / `k=-n` for int
// deltas, `k=v` with the changed span highlighted via diffutil.StringDiff
// for string changes, and `k=[+a,-b]` for set changes.
func Diff(s, other *state.State, c *Colors) string {
	entries := state.Diff(s, other)
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		switch e.Kind {
		case state.Added:
			parts = append(parts, c.paint(AddedAttr, "+"+string(e.Key)))
		case state.Removed:
			parts = append(parts, c.paint(RemovedAttr, "-"+string(e.Key)))
		case state.Changed:
			if e.Delta != 0 {
				sign := "+"
				n := e.Delta
				if n < 0 {
					sign = "-"
					n = -n
				}
				parts = append(parts, c.paint(KeyAttr, string(e.Key))+c.paint(PunctAttr, "=")+c.paint(AddedAttr, sign+strconv.FormatInt(n, 10)))
			} else {
				oldVal, _ := other.Get(e.Key)
				parts = append(parts, c.paint(KeyAttr, string(e.Key))+c.paint(PunctAttr, "=")+diffString(oldVal.StrVal(), e.Value.StrVal(), c))
			}
		case state.SetChanged:
			sort.Strings(e.Added)
			sort.Strings(e.Lost)
			members := make([]string, 0, len(e.Added)+len(e.Lost))
			for _, m := range e.Added {
				members = append(members, c.paint(AddedAttr, "+"+m))
			}
			for _, m := range e.Lost {
				members = append(members, c.paint(RemovedAttr, "-"+m))
			}
			parts = append(parts, c.paint(KeyAttr, string(e.Key))+c.paint(PunctAttr, "=")+c.paint(PunctAttr, "[")+strings.Join(members, ",")+c.paint(PunctAttr, "]"))
		}
	}
	var b strings.Builder
	b.WriteString(c.paint(PunctAttr, "<"))
	b.WriteString(c.paint(PunctAttr, "\""))
	b.WriteString(c.paint(NameAttr, s.Name()))
	b.WriteString(c.paint(PunctAttr, "\":"))
	if len(parts) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(parts, " "))
	}
	b.WriteString(c.paint(PunctAttr, ">"))
	return b.String()
}

// diffString renders the character-level diff between a changed
// string-valued quality's old and new values, via diffutil.StringDiff,
// painting inserted/deleted spans the same way SetChanged paints
// member deltas.
func diffString(from, to string, c *Colors) string {
	segments := diffutil.StringDiff(from, to)
	var b strings.Builder
	for _, seg := range segments {
		switch seg.Op {
		case diffutil.Insert:
			b.WriteString(c.paint(AddedAttr, seg.Text))
		case diffutil.Delete:
			b.WriteString(c.paint(RemovedAttr, seg.Text))
		default:
			b.WriteString(c.paint(ValueAttr, seg.Text))
		}
	}
	return b.String()
}

func sortedKeys(keys []quality.Key) []quality.Key {
	out := make([]quality.Key, len(keys))
	copy(out, keys)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToUpper(string(out[i])) < strings.ToUpper(string(out[j]))
	})
	return out
}

