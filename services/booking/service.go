package booking

import (
	"context"
	"errors"
	"time"

	appointmentRepo "clinicdesk/database/repository/appointment"
	"clinicdesk/models"
	"clinicdesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Booking outcomes as surfaced to the gateway.
const (
	OutcomeNone     = "none"
	OutcomeBooked   = "booked"
	OutcomeRejected = "rejected"
)

// BookingResult is the outcome of one booking attempt.
type BookingResult struct {
	Outcome     string
	Appointment *models.Appointment
	Reason      string
	// NextSlot carries the next free slot when the attempt was rejected, so
	// the conversation layer can offer an alternative.
	NextSlot *models.SlotWindow
}

// BookingService is the only writer of appointments.
type BookingService interface {
	TryBook(ctx context.Context, req *models.BookingRequest, now time.Time) (*BookingResult, error)
	BookedSlots(ctx context.Context) ([]models.SlotWindow, error)
	NextAvailable(ctx context.Context, after time.Time) (*models.SlotWindow, error)
}

// DefaultBookingService validates against a fresh read of the store and
// commits through an atomic slot reservation.
type DefaultBookingService struct {
	Repo     appointmentRepo.AppointmentRepository
	Resolver *AvailabilityResolver
}

func NewDefaultBookingService(repo appointmentRepo.AppointmentRepository, policy models.PracticePolicy) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:     repo,
		Resolver: &AvailabilityResolver{Repo: repo, Policy: policy},
	}
}

// BookedSlots exposes the resolver's projection of current bookings.
func (s *DefaultBookingService) BookedSlots(ctx context.Context) ([]models.SlotWindow, error) {
	slots, err := s.Resolver.BookedSlots(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return slots, nil
}

// NextAvailable returns the next free slot at or after the given instant.
func (s *DefaultBookingService) NextAvailable(ctx context.Context, after time.Time) (*models.SlotWindow, error) {
	slots, err := s.Resolver.BookedSlots(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return s.Resolver.NextAvailableSlot(after, slots), nil
}

// TryBook validates and persists one booking request. Whatever availability a
// session believed earlier, validation here runs against a fresh read, and
// the capacity check is re-enforced atomically by the reservation so two
// concurrent bookers cannot overfill a slot.
//
// Identical retries are not deduplicated: calling twice books twice.
func (s *DefaultBookingService) TryBook(ctx context.Context, req *models.BookingRequest, now time.Time) (*BookingResult, error) {
	if req == nil {
		return &BookingResult{Outcome: OutcomeNone}, nil
	}
	logger := utils.GetLogger()

	slots, err := s.Resolver.BookedSlots(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	if verr := s.Resolver.Validate(req, slots, now); verr != nil {
		logger.Info("booking rejected",
			zap.String("reason", verr.Code),
			zap.String("date", req.Date),
			zap.String("time", req.Time))
		return &BookingResult{
			Outcome:  OutcomeRejected,
			Reason:   verr.Code,
			NextSlot: s.Resolver.NextAvailableSlot(suggestAfter(req, now), slots),
		}, nil
	}

	// Validate guarantees the slot parses.
	t, _ := ParseSlot(req.Date, req.Time)
	date, label := SlotDate(t), SlotLabel(t)

	if err := s.Repo.ReserveSlot(ctx, date, label, s.Resolver.Policy.MaxPerSlot); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotFull) {
			// The snapshot predates the losing reservation; mark the slot
			// full locally so the suggestion skips it.
			for CountAt(slots, date, label) < s.Resolver.Policy.MaxPerSlot {
				slots = append(slots, models.SlotWindow{Date: date, Time: label})
			}
			return &BookingResult{
				Outcome:  OutcomeRejected,
				Reason:   CodeSlotFull,
				NextSlot: s.Resolver.NextAvailableSlot(t, slots),
			}, nil
		}
		return nil, storeError(err)
	}

	doctor := req.Doctor
	if doctor == "" {
		doctor = s.Resolver.Policy.PractitionerName
	}
	appt := &models.Appointment{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Contact: req.Contact,
		Doctor:  doctor,
		Date:    date,
		Time:    label,
	}

	saved, err := s.Repo.Insert(ctx, appt)
	if err != nil {
		if relErr := s.Repo.ReleaseSlot(ctx, date, label); relErr != nil {
			logger.Error("failed to release reserved slot after insert failure",
				zap.String("date", date), zap.String("time", label), zap.Error(relErr))
		}
		return nil, storeError(err)
	}

	logger.Info("appointment booked",
		zap.String("id", saved.ID),
		zap.String("date", saved.Date),
		zap.String("time", saved.Time))
	return &BookingResult{Outcome: OutcomeBooked, Appointment: saved}, nil
}

// suggestAfter anchors the alternative-slot search at the requested time when
// it parses to an instant that has not passed; otherwise the search starts
// from now.
func suggestAfter(req *models.BookingRequest, now time.Time) time.Time {
	if t, err := ParseSlot(req.Date, req.Time); err == nil && !InPast(t, now) {
		return t
	}
	return now
}

// storeError maps a persistence failure onto the upstream error taxonomy.
func storeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewBookingError(CodeUpstreamTimeout, "appointment store timed out")
	}
	return NewBookingError(CodeUpstreamUnavailable, "appointment store unavailable")
}
