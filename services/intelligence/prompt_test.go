// File: services/intelligence/prompt_test.go
package ai

import (
	"testing"
	"time"

	"clinicdesk/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildSystemContext(t *testing.T) {
	p := models.PracticePolicy{
		PractitionerName: "Dr Kumar Awadhesh",
		Specialty:        "Consultant surgeon",
		ClinicName:       "City Clinic Group",
		ClinicPhone:      "26312122061600",
		CostContact:      "For cost of surgery contact Ansuiya 58246776",
		HoursStart:       16,
		HoursEnd:         18,
		Weekdays:         map[time.Weekday]bool{time.Monday: true, time.Friday: true},
		MaxPerSlot:       5,
	}
	now := time.Date(2024, 10, 10, 9, 0, 0, 0, time.Local)
	booked := []models.SlotWindow{{Date: "2024-10-11", Time: "4:00 PM"}}

	got := BuildSystemContext(p, now, booked)

	assert.Contains(t, got, "Dr Kumar Awadhesh")
	assert.Contains(t, got, "4 PM to 6 PM")
	assert.Contains(t, got, "Monday, Friday")
	assert.Contains(t, got, "today is 2024-10-10, Thursday")
	assert.Contains(t, got, "The current time is 9:00 AM")
	assert.Contains(t, got, "2024-10-11 4:00 PM")
	assert.Contains(t, got, "only 5 appointments in 1 hour")
	assert.Contains(t, got, "yyyy-mm-dd")
}

func TestBuildSystemContextNoBookings(t *testing.T) {
	p := models.PracticePolicy{HoursStart: 16, HoursEnd: 18, MaxPerSlot: 5,
		Weekdays: map[time.Weekday]bool{time.Monday: true}}
	got := BuildSystemContext(p, time.Now(), nil)
	assert.Contains(t, got, "no slots yet")
}
