package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(day, month, year int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func window(t *testing.T, open, close time.Time) DateWindow {
	t.Helper()
	w, err := NewWindow(open, close)
	require.NoError(t, err)
	return w
}

func TestNewWindowRejectsInvertedRange(t *testing.T) {
	_, err := NewWindow(date(20, 3, 2025), date(15, 2, 2025))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewWindowAllowsSingleDay(t *testing.T) {
	w, err := NewWindow(date(15, 2, 2025), date(15, 2, 2025))
	require.NoError(t, err)
	assert.True(t, w.Contains(date(15, 2, 2025)))
}

func TestOverlapsInclusiveBoundaries(t *testing.T) {
	a := window(t, date(1, 1, 2025), date(31, 1, 2025))

	tests := []struct {
		name    string
		other   DateWindow
		overlap bool
	}{
		{"disjoint after", window(t, date(1, 2, 2025), date(28, 2, 2025)), false},
		{"disjoint before", window(t, date(1, 12, 2024), date(31, 12, 2024)), false},
		{"shared closing day", window(t, date(31, 1, 2025), date(15, 2, 2025)), true},
		{"shared opening day", window(t, date(1, 12, 2024), date(1, 1, 2025)), true},
		{"nested", window(t, date(10, 1, 2025), date(20, 1, 2025)), true},
		{"surrounding", window(t, date(1, 12, 2024), date(28, 2, 2025)), true},
		{"identical", a, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlap, a.Overlaps(tt.other))
			// overlap is symmetric
			assert.Equal(t, tt.overlap, tt.other.Overlaps(a))
		})
	}
}

func TestContainsBoundaries(t *testing.T) {
	w := window(t, date(15, 2, 2025), date(20, 3, 2025))

	assert.True(t, w.Contains(date(15, 2, 2025)))
	assert.True(t, w.Contains(date(20, 3, 2025)))
	assert.True(t, w.Contains(date(1, 3, 2025)))
	assert.False(t, w.Contains(date(14, 2, 2025)))
	assert.False(t, w.Contains(date(21, 3, 2025)))
}

func TestParseDateRoundTrip(t *testing.T) {
	parsed, err := ParseDate("15/2/25")
	require.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.February, parsed.Month())
	assert.Equal(t, 15, parsed.Day())
	assert.Equal(t, "15/2/25", FormatDate(parsed))
}

func TestParseDateRejectsOtherLayouts(t *testing.T) {
	for _, raw := range []string{"2025-02-15", "15-02-2025", "Feb 15 2025", ""} {
		_, err := ParseDate(raw)
		assert.Error(t, err, raw)
	}
}
