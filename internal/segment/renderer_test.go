package segment_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fakeyudi/ticker/internal/segment"
)

func TestJSONRendererSelectedSegmentsOnly(t *testing.T) {
	v := segment.Format(90_061_000)
	data, err := (&segment.JSONRenderer{}).Render(v, []segment.Name{segment.Hours, segment.Seconds})
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Segments map[string]string `json:"segments"`
		Millis   int64             `json:"millis"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, data)
	}
	if len(out.Segments) != 2 || out.Segments["hours"] != "01" || out.Segments["seconds"] != "01" {
		t.Errorf("segments = %v", out.Segments)
	}
	if out.Millis != 90_061_000 {
		t.Errorf("millis = %d", out.Millis)
	}
}

func TestTextRenderer(t *testing.T) {
	v := segment.Format(-3_723_000)
	data, err := (&segment.TextRenderer{}).Render(v, segment.All)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "-00:01:02:03\n") {
		t.Errorf("unexpected clock line:\n%s", out)
	}
	if !strings.Contains(out, "02 minutes") {
		t.Errorf("missing labelled minutes:\n%s", out)
	}
}
