package config

import (
	"strings"
	"time"

	"clinicdesk/models"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// PracticePolicy assembles the practitioner policy from the loaded config.
func PracticePolicy() models.PracticePolicy {
	days := make(map[time.Weekday]bool)
	for _, name := range strings.Split(AppConfig.BusinessDays, ",") {
		if d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
			days[d] = true
		}
	}
	return models.PracticePolicy{
		PractitionerName:  AppConfig.PractitionerName,
		Specialty:         AppConfig.Specialty,
		ClinicName:        AppConfig.ClinicName,
		ClinicPhone:       AppConfig.ClinicPhone,
		CostContact:       AppConfig.CostContact,
		HoursStart:        AppConfig.BusinessHoursStart,
		HoursEnd:          AppConfig.BusinessHoursEnd,
		Weekdays:          days,
		MaxPerSlot:        AppConfig.MaxPerSlot,
		SearchHorizonDays: AppConfig.SearchHorizonDays,
	}
}
