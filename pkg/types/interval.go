package types

import "fmt"

// Interval is a same-day time range [Start, End) with Start < End.
type Interval struct {
	Start TimeString
	End   TimeString
}

// NewInterval builds a validated interval.
func NewInterval(start, end TimeString) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate checks both endpoints and the Start < End invariant.
func (iv Interval) Validate() error {
	s, err := iv.Start.Minutes()
	if err != nil {
		return fmt.Errorf("interval start: %v", err)
	}
	e, err := iv.End.Minutes()
	if err != nil {
		return fmt.Errorf("interval end: %v", err)
	}
	if s >= e {
		return fmt.Errorf("interval start %s must be before end %s", iv.Start, iv.End)
	}
	return nil
}

// Overlaps reports whether two intervals share any time.
// Half-open semantics: touching endpoints (a.End == b.Start) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.IsBefore(other.End) && other.Start.IsBefore(iv.End)
}

// Contains reports whether other lies entirely within iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.IsBefore(iv.Start) && !iv.End.IsBefore(other.End)
}

// Intersect returns the common part of two intervals, if any.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	start := iv.Start
	if start.IsBefore(other.Start) {
		start = other.Start
	}
	end := iv.End
	if other.End.IsBefore(end) {
		end = other.End
	}
	if !start.IsBefore(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// DurationMinutes returns the interval length in minutes.
func (iv Interval) DurationMinutes() int {
	s, err1 := iv.Start.Minutes()
	e, err2 := iv.End.Minutes()
	if err1 != nil || err2 != nil || e < s {
		return 0
	}
	return e - s
}
