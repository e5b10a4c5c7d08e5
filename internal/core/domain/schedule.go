package domain

import (
	"errors"
	"time"
)

// ErrInvalidWindow is returned for schedule windows with out-of-range
// fields or start_hour >= end_hour. Windows crossing midnight cannot be
// expressed as a single row; they must be split into two.
var ErrInvalidWindow = errors.New("invalid schedule window")

// Schedule is a weekly dayparting window for a campaign. DayOfWeek uses
// the Monday=0 convention. Hours form a half-open interval: a window
// with EndHour 17 covers up to but not including 17:00.
type Schedule struct {
	ID         int64
	CampaignID int64
	DayOfWeek  int
	StartHour  int
	EndHour    int
}

// Validate rejects out-of-range days and hours as well as empty or
// midnight-crossing windows (StartHour >= EndHour), which would never
// match under the half-open rule.
func (s Schedule) Validate() error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return ErrInvalidWindow
	}
	if s.StartHour < 0 || s.StartHour > 23 || s.EndHour < 0 || s.EndHour > 23 {
		return ErrInvalidWindow
	}
	if s.StartHour >= s.EndHour {
		return ErrInvalidWindow
	}
	return nil
}

// Contains reports whether now falls inside the window. The comparison
// uses now's location, so callers must pass a time already converted to
// the reference zone.
func (s Schedule) Contains(now time.Time) bool {
	return s.DayOfWeek == Weekday(now) &&
		s.StartHour <= now.Hour() && now.Hour() < s.EndHour
}

// WithinAnySchedule reports whether now falls inside at least one of the
// given windows. A campaign with no windows is never within schedule.
func WithinAnySchedule(schedules []Schedule, now time.Time) bool {
	for _, s := range schedules {
		if s.Contains(now) {
			return true
		}
	}
	return false
}

// Weekday converts time.Weekday (Sunday=0) to the Monday=0 convention
// used by schedule rows.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
