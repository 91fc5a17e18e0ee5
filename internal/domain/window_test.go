package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var utcPlus8 = time.FixedZone("UTC+8", 8*3600)

func TestDailyWindow_AfterStartHour(t *testing.T) {
	// 14:00 local on 2025-06-10 is 06:00 UTC
	now := time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC)

	w := DailyWindow(now, utcPlus8, 8)

	// window opened at 08:00 local = 00:00 UTC, end clamped to now
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, now, w.End)
}

func TestDailyWindow_BeforeStartHour(t *testing.T) {
	// 06:00 local on 2025-06-10 is 22:00 UTC the day before
	now := time.Date(2025, 6, 9, 22, 0, 0, 0, time.UTC)

	w := DailyWindow(now, utcPlus8, 8)

	// still inside yesterday's window, opened 08:00 local on 2025-06-09
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, now, w.End)
}

func TestDailyWindow_ExactlyAtStartHour(t *testing.T) {
	// 08:00 local exactly, a new window just opened
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	w := DailyWindow(now, utcPlus8, 8)

	assert.Equal(t, now, w.Start)
	assert.Equal(t, now, w.End)
}

func TestDailyWindow_UTCLocation(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 30, 0, 0, time.UTC)

	w := DailyWindow(now, time.UTC, 0)

	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, now, w.End)
}

func TestWindow_Contains(t *testing.T) {
	w := Window{
		Start: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name     string
		t        time.Time
		expected bool
	}{
		{name: "inside", t: w.Start.Add(12 * time.Hour), expected: true},
		{name: "at start, inclusive", t: w.Start, expected: true},
		{name: "at end, exclusive", t: w.End, expected: false},
		{name: "before start", t: w.Start.Add(-time.Second), expected: false},
		{name: "after end", t: w.End.Add(time.Hour), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.Contains(tt.t))
		})
	}
}
