package game

import (
	"fmt"
	"time"
)

// raceLayout is the civil format races are stored in: "2006-01-02" + "15:04".
const raceLayout = "2006-01-02 15:04"

// RaceStart resolves a race's civil date, start time and IANA timezone name
// into an absolute instant. Race creation and the reminder worker use it to
// surface malformed input; the gate swallows its error instead.
func RaceStart(date, startTime, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("resolving timezone %q: %w", tz, err)
	}
	t, err := time.ParseInLocation(raceLayout, date+" "+startTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing race start %q %q: %w", date, startTime, err)
	}
	return t, nil
}

// Gate decides whether prediction submission is still allowed for a race.
// The window closes Offset before the localized race start; a zero offset
// closes exactly at start and a negative one keeps the window open past it.
type Gate struct {
	offset time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewGate builds a Gate closing offsetMinutes before race start.
func NewGate(offsetMinutes int) *Gate {
	return &Gate{
		offset: time.Duration(offsetMinutes) * time.Minute,
		now:    time.Now,
	}
}

// Open reports whether the betting window is still open. Any parsing or
// timezone failure counts as closed: an ambiguous race time must never let
// a late prediction through.
func (g *Gate) Open(date, startTime, tz string) bool {
	start, err := RaceStart(date, startTime, tz)
	if err != nil {
		return false
	}
	cutoff := start.Add(-g.offset)
	return g.now().In(start.Location()).Before(cutoff)
}
