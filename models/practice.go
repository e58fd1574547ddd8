package models

import "time"

// PracticePolicy describes one practitioner's booking rules. The deployment
// runs a single practitioner, but availability logic takes the policy as a
// parameter so a second practitioner is a second policy value.
type PracticePolicy struct {
	PractitionerName string
	Specialty        string
	ClinicName       string
	ClinicPhone      string
	CostContact      string

	// Bookable hours: [HoursStart, HoursEnd) on the listed weekdays,
	// local wall-clock, hour granularity.
	HoursStart int
	HoursEnd   int
	Weekdays   map[time.Weekday]bool

	MaxPerSlot        int
	SearchHorizonDays int
}

// AllowsDay reports whether the weekday is bookable under this policy.
func (p PracticePolicy) AllowsDay(d time.Weekday) bool {
	return p.Weekdays[d]
}
