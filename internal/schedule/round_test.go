package schedule

import (
	"testing"
	"time"
)

func TestRoundToInterval(t *testing.T) {
	s := time.Second
	cases := []struct{ in, want time.Duration }{
		{0, 0},
		{499 * time.Millisecond, 0},
		{500 * time.Millisecond, s},
		{1499 * time.Millisecond, s},
		{2600 * time.Millisecond, 3 * s},
		{-400 * time.Millisecond, 0},
		{-500 * time.Millisecond, 0},
		{-600 * time.Millisecond, -s},
	}
	for _, tc := range cases {
		if got := roundToInterval(tc.in, s); got != tc.want {
			t.Errorf("roundToInterval(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNominal(t *testing.T) {
	origin := 250 * time.Millisecond
	if got := Nominal(origin+1016*time.Millisecond, origin, time.Second); got != origin+time.Second {
		t.Errorf("Nominal late reading = %v", got)
	}
	if got := Nominal(origin+2990*time.Millisecond, origin, time.Second); got != origin+3*time.Second {
		t.Errorf("Nominal early reading = %v", got)
	}
	if got := Nominal(origin, origin, 0); got != origin {
		t.Errorf("Nominal at origin = %v", got)
	}
}
