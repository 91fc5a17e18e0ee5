package domain

import "time"

// Window is the accounting period a report covers, stored in UTC.
type Window struct {
	// Start inclusive lower bound.
	Start time.Time `json:"start_utc"`
	// End exclusive upper bound, clamped to report time when the day is not over.
	End time.Time `json:"end_utc"`
}

// DailyWindow computes the 24h accounting window containing now. The window
// starts at startHour in loc's local calendar; when local time has not reached
// today's start yet, yesterday's window is used. The end never exceeds now.
func DailyWindow(now time.Time, loc *time.Location, startHour int) Window {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), startHour, 0, 0, 0, loc)
	if local.Before(start) {
		start = start.AddDate(0, 0, -1)
	}

	end := start.Add(24 * time.Hour)
	if end.After(now) {
		end = now
	}

	return Window{Start: start.UTC(), End: end.UTC()}
}

// Contains reports whether t falls inside [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
