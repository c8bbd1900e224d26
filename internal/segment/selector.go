package segment

import (
	"fmt"
	"strings"
)

// SelectorError reports an unknown segment name in a selector string.
type SelectorError struct {
	Selector string
	Unknown  string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("unknown segment %q in selector %q", e.Unknown, e.Selector)
}

// ParseSelector parses a comma or space separated list of segment names.
// The result is always ordered days→hours→minutes→seconds regardless of input
// order, with duplicates removed. An empty selector selects every segment.
func ParseSelector(sel string) ([]Name, error) {
	fields := strings.FieldsFunc(sel, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return append([]Name(nil), All...), nil
	}

	want := make(map[Name]bool, len(fields))
	for _, f := range fields {
		n, ok := lookup(strings.ToLower(f))
		if !ok {
			return nil, &SelectorError{Selector: sel, Unknown: f}
		}
		want[n] = true
	}

	out := make([]Name, 0, len(want))
	for _, n := range All {
		if want[n] {
			out = append(out, n)
		}
	}
	return out, nil
}

// lookup accepts both plural and singular forms ("day", "days").
func lookup(s string) (Name, bool) {
	for _, n := range All {
		if s == string(n) || s+"s" == string(n) {
			return n, true
		}
	}
	return "", false
}
