// Package segment decomposes a millisecond delta into the day, hour, minute
// and second segments shown by the ticker widget.
package segment

import "strconv"

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Name identifies one display segment.
type Name string

const (
	Days    Name = "days"
	Hours   Name = "hours"
	Minutes Name = "minutes"
	Seconds Name = "seconds"
)

// All lists every segment, most significant first. Rendering always follows
// this order.
var All = []Name{Days, Hours, Minutes, Seconds}

// Values is the decomposition of a delta. The four fields always hold the
// magnitude; Negative marks an overdue countdown.
type Values struct {
	Days     int64 `json:"days"`
	Hours    int64 `json:"hours"`
	Minutes  int64 `json:"minutes"`
	Seconds  int64 `json:"seconds"`
	Negative bool  `json:"negative"`
}

// Format splits deltaMillis into whole days, hours, minutes and seconds.
// Sub-second remainders are truncated. Negative is only set when the
// truncated magnitude is at least one second, so the display never shows a
// signed zero around the moment a countdown expires.
func Format(deltaMillis int64) Values {
	mag := uint64(deltaMillis)
	if deltaMillis < 0 {
		// -(MinInt64) does not fit in an int64.
		mag = uint64(-(deltaMillis + 1)) + 1
	}

	v := Values{
		Days:    int64(mag / msPerDay),
		Hours:   int64(mag % msPerDay / msPerHour),
		Minutes: int64(mag % msPerHour / msPerMinute),
		Seconds: int64(mag % msPerMinute / msPerSecond),
	}
	v.Negative = deltaMillis < 0 && mag >= msPerSecond
	return v
}

// Millis reconstructs the signed delta, truncated to whole seconds.
func (v Values) Millis() int64 {
	ms := v.Days*msPerDay + v.Hours*msPerHour + v.Minutes*msPerMinute + v.Seconds*msPerSecond
	if v.Negative {
		return -ms
	}
	return ms
}

// Get returns the numeric value of a single segment.
func (v Values) Get(n Name) int64 {
	switch n {
	case Days:
		return v.Days
	case Hours:
		return v.Hours
	case Minutes:
		return v.Minutes
	case Seconds:
		return v.Seconds
	}
	return 0
}

// Text renders a segment as display text: two zero-padded digits, except
// days which grows as needed.
func (v Values) Text(n Name) string {
	return pad(v.Get(n))
}

// String renders all four segments as DD:HH:MM:SS.
func (v Values) String() string {
	return Clock(v, All)
}

func pad(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) < 2 {
		s = "0" + s
	}
	return s
}
