package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	timeLayout    = "15:04"
	minutesPerDay = 24 * 60
)

// TimeString represents a wall-clock time of day ("HH:MM", 24-hour, minute
// granularity). The zero value is invalid; construct values through
// NewTimeString, ParseTimeString or FromMinutes so the canonical form and the
// 00:00..23:59 range are guaranteed. All arithmetic and comparisons are done
// in integer minutes since midnight, never by string comparison.
type TimeString string

// NewTimeString creates a TimeString from the clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// ParseTimeString parses and validates an "HH:MM" string.
// Returns an error for malformed input instead of producing a garbage value.
func ParseTimeString(s string) (TimeString, error) {
	m, err := ToMinutes(s)
	if err != nil {
		return "", err
	}
	return fromValidMinutes(m), nil
}

// ToMinutes converts an "HH:MM" string to minutes since midnight.
// Rejects anything outside 00:00..23:59.
func ToMinutes(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hh, ok1 := twoDigits(s[0], s[1])
	mm, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	if hh > 23 {
		return 0, fmt.Errorf("invalid time %q: hour out of range", s)
	}
	if mm > 59 {
		return 0, fmt.Errorf("invalid time %q: minute out of range", s)
	}
	return hh*60 + mm, nil
}

// FromMinutes converts minutes since midnight back to a TimeString.
// m must be within 0..1439; callers guard the range.
func FromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= minutesPerDay {
		return "", fmt.Errorf("minutes %d out of range [0, %d)", m, minutesPerDay)
	}
	return fromValidMinutes(m), nil
}

func fromValidMinutes(m int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// String returns the canonical "HH:MM" form.
func (t TimeString) String() string {
	return string(t)
}

// Minutes returns minutes since midnight for a constructed TimeString.
func (t TimeString) Minutes() (int, error) {
	return ToMinutes(string(t))
}

// AddMinutes returns the time d minutes later.
// d must be positive and the result must stay within the same day.
func (t TimeString) AddMinutes(d int) (TimeString, error) {
	if d <= 0 {
		return "", fmt.Errorf("duration must be positive, got %d", d)
	}
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	if m+d >= minutesPerDay {
		return "", fmt.Errorf("time %s + %d minutes crosses midnight", t, d)
	}
	return fromValidMinutes(m + d), nil
}

// IsBefore reports whether t is strictly earlier than other.
// Both values are assumed canonical; a malformed value compares as false.
func (t TimeString) IsBefore(other TimeString) bool {
	a, err1 := t.Minutes()
	b, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as
// "HH:MM:SS"; only the HH:MM prefix is kept.
func (t *TimeString) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := ParseTimeString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if _, err := t.Minutes(); err != nil {
		return nil, err
	}
	return string(t), nil
}
