package widget

// Attribute names the widget observes.
const (
	AttrTarget    = "target"
	AttrSegments  = "segments"
	AttrDirection = "direction"
)

// ObservedAttributes lists the attributes whose changes restart a running
// widget.
var ObservedAttributes = []string{AttrTarget, AttrSegments, AttrDirection}

func observed(name string) bool {
	for _, a := range ObservedAttributes {
		if a == name {
			return true
		}
	}
	return false
}

// Attributes is the widget's configuration surface: a flat set of string
// attributes. An absent attribute reads as the empty string.
type Attributes struct {
	values map[string]string
}

// NewAttributes returns an attribute set seeded with kv.
func NewAttributes(kv map[string]string) *Attributes {
	a := &Attributes{values: make(map[string]string, len(kv))}
	for k, v := range kv {
		a.values[k] = v
	}
	return a
}

// Get returns the value of name, or "" when unset.
func (a *Attributes) Get(name string) string {
	return a.values[name]
}

// Set stores value under name and returns the previous value and whether it
// changed.
func (a *Attributes) Set(name, value string) (old string, changed bool) {
	old = a.values[name]
	if old == value {
		return old, false
	}
	if value == "" {
		delete(a.values, name)
	} else {
		a.values[name] = value
	}
	return old, true
}
