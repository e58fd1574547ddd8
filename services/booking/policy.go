package booking

import (
	"fmt"
	"strings"
	"time"

	"clinicdesk/models"
)

const slotDateLayout = "2006-01-02"

// Accepted time spellings. The model is instructed to produce 24-hour HH:MM,
// but stored slot labels and user-echoed values use the 12-hour clock.
var slotTimeLayouts = []string{"15:04", "3:04 PM", "3:04PM", "3 PM", "3PM"}

// ParseSlot turns a (date, time) string pair into a local wall-clock instant.
// Callers run this before any policy check; policy functions themselves only
// ever see well-formed instants.
func ParseSlot(date, timeLabel string) (time.Time, error) {
	day, err := time.ParseInLocation(slotDateLayout, strings.TrimSpace(date), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	label := strings.ToUpper(strings.TrimSpace(timeLabel))
	for _, layout := range slotTimeLayouts {
		if t, err := time.ParseInLocation(layout, label, time.Local); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(),
				t.Hour(), t.Minute(), 0, 0, time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", timeLabel)
}

// SlotDate formats the canonical date string for an instant.
func SlotDate(t time.Time) string {
	return t.Format(slotDateLayout)
}

// SlotLabel formats the canonical hour-bucket label, e.g. "4:00 PM".
// Capacity is counted per hour, so minutes collapse to the hour start.
func SlotLabel(t time.Time) string {
	bucket := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return bucket.Format("3:04 PM")
}

// WithinBusinessHours reports whether the instant falls on a bookable weekday
// inside [HoursStart, HoursEnd).
func WithinBusinessHours(t time.Time, p models.PracticePolicy) bool {
	return p.AllowsDay(t.Weekday()) && t.Hour() >= p.HoursStart && t.Hour() < p.HoursEnd
}

// InPast reports whether the instant is strictly before now. A slot starting
// exactly now is still bookable.
func InPast(t, now time.Time) bool {
	return t.Before(now)
}
