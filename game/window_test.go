package game

import (
	"testing"
	"time"
)

func gateAt(offsetMinutes int, now time.Time) *Gate {
	g := NewGate(offsetMinutes)
	g.now = func() time.Time { return now }
	return g
}

func TestGateBoundary(t *testing.T) {
	// Race starts 2026-06-07 15:00 Monaco time; window closes 5 minutes before.
	loc, err := time.LoadLocation("Europe/Monaco")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}
	start := time.Date(2026, 6, 7, 15, 0, 0, 0, loc)

	tests := []struct {
		name   string
		offset int
		now    time.Time
		open   bool
	}{
		{"six minutes out is open", 5, start.Add(-6 * time.Minute), true},
		{"four minutes out is closed", 5, start.Add(-4 * time.Minute), false},
		{"exactly at cutoff is closed", 5, start.Add(-5 * time.Minute), false},
		{"zero offset closes at start", 0, start.Add(-time.Second), true},
		{"zero offset closed from start", 0, start, false},
		{"negative offset stays open past start", -10, start.Add(5 * time.Minute), true},
		{"negative offset eventually closes", -10, start.Add(10 * time.Minute), false},
		{"caller in another zone same instant", 5, start.Add(-6 * time.Minute).UTC(), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := gateAt(tc.offset, tc.now)
			if got := g.Open("2026-06-07", "15:00", "Europe/Monaco"); got != tc.open {
				t.Fatalf("Open() = %v, want %v", got, tc.open)
			}
		})
	}
}

// Malformed temporal input always closes the window; it never reaches the
// caller as an error.
func TestGateFailsClosed(t *testing.T) {
	g := gateAt(5, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name            string
		date, start, tz string
	}{
		{"bad timezone", "2026-06-07", "15:00", "Mars/Olympus"},
		{"bad date", "07.06.2026", "15:00", "UTC"},
		{"bad time", "2026-06-07", "3pm", "UTC"},
		{"empty everything", "", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if g.Open(tc.date, tc.start, tc.tz) {
				t.Fatal("Open() = true for malformed input, want false")
			}
		})
	}
}

func TestRaceStartSurfacesErrors(t *testing.T) {
	if _, err := RaceStart("2026-06-07", "15:00", "Europe/Monaco"); err != nil {
		t.Fatalf("RaceStart() unexpected error: %v", err)
	}
	if _, err := RaceStart("2026-06-07", "15:00", "Nowhere/Nothing"); err == nil {
		t.Fatal("RaceStart() with bad zone: expected error")
	}
	if _, err := RaceStart("June 7th", "15:00", "UTC"); err == nil {
		t.Fatal("RaceStart() with bad date: expected error")
	}
}
