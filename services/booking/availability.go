package booking

import (
	"context"
	"time"

	appointmentRepo "clinicdesk/database/repository/appointment"
	"clinicdesk/models"
)

// AvailabilityResolver turns raw appointment records into availability facts
// for one practitioner's policy.
type AvailabilityResolver struct {
	Repo   appointmentRepo.AppointmentRepository
	Policy models.PracticePolicy
}

// BookedSlots reads every appointment and projects it to its (date, time)
// pair. Store failures propagate to the caller; availability is never
// silently reported as empty.
func (r *AvailabilityResolver) BookedSlots(ctx context.Context) ([]models.SlotWindow, error) {
	appointments, err := r.Repo.Find(ctx)
	if err != nil {
		return nil, err
	}

	slots := make([]models.SlotWindow, 0, len(appointments))
	for _, a := range appointments {
		// Canonicalize where possible so counting is format-insensitive.
		if t, err := ParseSlot(a.Date, a.Time); err == nil {
			slots = append(slots, models.SlotWindow{Date: SlotDate(t), Time: SlotLabel(t)})
			continue
		}
		slots = append(slots, models.SlotWindow{Date: a.Date, Time: a.Time})
	}
	return slots, nil
}

// CountAt returns the number of booked slots at the exact (date, time) bucket.
func CountAt(slots []models.SlotWindow, date, timeLabel string) int {
	n := 0
	for _, s := range slots {
		if s.Date == date && s.Time == timeLabel {
			n++
		}
	}
	return n
}

// Validate checks a candidate booking against policy and current bookings.
// Checks run in a fixed order so the rejection reason is always the first
// rule that fails: shape, past, hours, capacity.
func (r *AvailabilityResolver) Validate(req *models.BookingRequest, slots []models.SlotWindow, now time.Time) *BookingError {
	if req.Name == "" || req.Contact == "" {
		return NewBookingError(CodeMalformed, "name and contact are required")
	}
	t, err := ParseSlot(req.Date, req.Time)
	if err != nil {
		return NewBookingError(CodeMalformed, err.Error())
	}
	if InPast(t, now) {
		return NewBookingError(CodeInPast, "requested slot is in the past")
	}
	if !WithinBusinessHours(t, r.Policy) {
		return NewBookingError(CodeOutOfHours, "requested slot is outside business hours")
	}
	if CountAt(slots, SlotDate(t), SlotLabel(t)) >= r.Policy.MaxPerSlot {
		return NewBookingError(CodeSlotFull, "requested slot is fully booked")
	}
	return nil
}

// NextAvailableSlot scans forward hour by hour inside business-hour windows
// and returns the first bucket with remaining capacity at or after the given
// instant. The scan gives up past the configured horizon and returns nil.
func (r *AvailabilityResolver) NextAvailableSlot(after time.Time, slots []models.SlotWindow) *models.SlotWindow {
	horizon := r.Policy.SearchHorizonDays
	if horizon <= 0 {
		horizon = 30
	}

	start := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, after.Location())
	for dayOffset := 0; dayOffset <= horizon; dayOffset++ {
		day := start.AddDate(0, 0, dayOffset)
		if !r.Policy.AllowsDay(day.Weekday()) {
			continue
		}
		for hour := r.Policy.HoursStart; hour < r.Policy.HoursEnd; hour++ {
			candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
			if candidate.Before(after) {
				continue
			}
			if CountAt(slots, SlotDate(candidate), SlotLabel(candidate)) < r.Policy.MaxPerSlot {
				return &models.SlotWindow{Date: SlotDate(candidate), Time: SlotLabel(candidate)}
			}
		}
	}
	return nil
}
