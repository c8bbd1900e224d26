package segment

import (
	"encoding/json"
	"strings"
)

// Renderer serializes a set of segment values for output.
type Renderer interface {
	Render(v Values, names []Name) ([]byte, error)
}

// JSONRenderer renders the selected segments as an indented JSON object.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(v Values, names []Name) ([]byte, error) {
	out := struct {
		Segments map[Name]string `json:"segments"`
		Millis   int64           `json:"millis"`
		Negative bool            `json:"negative"`
	}{
		Segments: make(map[Name]string, len(names)),
		Millis:   v.Millis(),
		Negative: v.Negative,
	}
	for _, n := range names {
		out.Segments[n] = v.Text(n)
	}
	return json.MarshalIndent(out, "", "  ")
}

// TextRenderer renders the selected segments as a colon separated clock
// followed by a labelled breakdown.
type TextRenderer struct{}

func (r *TextRenderer) Render(v Values, names []Name) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(Clock(v, names))
	sb.WriteString("\n")
	for _, n := range names {
		sb.WriteString("  ")
		sb.WriteString(v.Text(n))
		sb.WriteString(" ")
		sb.WriteString(string(n))
		sb.WriteString("\n")
	}
	return []byte(sb.String()), nil
}

// Clock joins the selected segments with colons, most significant first, and
// prefixes the sign of an overdue value.
func Clock(v Values, names []Name) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, v.Text(n))
	}
	s := strings.Join(parts, ":")
	if v.Negative {
		s = "-" + s
	}
	return s
}
