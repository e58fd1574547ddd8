package appointmentRepo

import (
	"context"
	"errors"

	"clinicdesk/models"
)

// ErrSlotFull is returned by ReserveSlot when the (date, time) bucket already
// holds the maximum number of appointments.
var ErrSlotFull = errors.New("slot is at capacity")

// AppointmentRepository defines appointment persistence. Appointments are
// only ever read and inserted; there is no update or delete path.
type AppointmentRepository interface {
	// Find returns every stored appointment.
	Find(ctx context.Context) ([]models.Appointment, error)

	// Insert stores a new appointment and returns it with timestamps set.
	Insert(ctx context.Context, appt *models.Appointment) (*models.Appointment, error)

	// ReserveSlot atomically claims one unit of capacity in the (date, time)
	// bucket, failing with ErrSlotFull when maxPerSlot is already reached.
	// Two concurrent callers can never both succeed on the last unit.
	ReserveSlot(ctx context.Context, date, timeLabel string, maxPerSlot int) error

	// ReleaseSlot returns one unit of capacity, compensating a reservation
	// whose appointment insert failed.
	ReleaseSlot(ctx context.Context, date, timeLabel string) error
}
