package domain

import "time"

// DateWindow is the inclusive open/close range during which a project accepts
// applications and officer assignments are considered live.
type DateWindow struct {
	Open  time.Time
	Close time.Time
}

// NewWindow builds a window from open/close dates. Close must not precede open.
func NewWindow(open, close time.Time) (DateWindow, error) {
	if close.Before(open) {
		return DateWindow{}, ErrInvalidInput
	}
	return DateWindow{Open: open, Close: close}, nil
}

// Overlaps reports whether two windows share at least one day. Boundaries are
// inclusive: a window closing on the day another opens counts as overlapping.
func (w DateWindow) Overlaps(other DateWindow) bool {
	return !(w.Close.Before(other.Open) || w.Open.After(other.Close))
}

// Contains reports whether the given date falls inside the window.
func (w DateWindow) Contains(date time.Time) bool {
	return !date.Before(w.Open) && !date.After(w.Close)
}

// ParseDate parses a d/M/yy date as used by stores and DTOs.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateFormat, value)
}

// FormatDate renders a date in the d/M/yy layout.
func FormatDate(date time.Time) string {
	return date.Format(DateFormat)
}
