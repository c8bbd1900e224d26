package widget

import (
	"fmt"
	"strings"
	"time"
)

// targetLayouts are tried in order. Layouts without a zone are read in the
// caller's location.
var targetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// TargetError reports a target attribute that is not a recognised date-time.
type TargetError struct {
	Value string
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("unrecognised target %q: want a date-time such as 2006-01-02T15:04:05.000+07:00", e.Value)
}

// ParseTarget parses a target attribute. An empty value yields ok=false and
// no error: the widget runs as a stopwatch.
func ParseTarget(value string, loc *time.Location) (t time.Time, ok bool, err error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range targetLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, &TargetError{Value: value}
}

// Direction selects how a countdown target is displayed.
type Direction string

const (
	// Down shows the time remaining until the target. Past the target the
	// value goes negative.
	Down Direction = "down"
	// Up shows the time elapsed since the target. Before the target the
	// value is negative.
	Up Direction = "up"
)

// ParseDirection reads a direction attribute. Unknown values report ok=false
// and fall back to Down.
func ParseDirection(value string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(Down):
		return Down, true
	case string(Up):
		return Up, true
	}
	return Down, false
}
