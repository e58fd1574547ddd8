package booking

import (
	"context"
	"testing"
	"time"

	"clinicdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotsAt(n int, date, label string) []models.SlotWindow {
	out := make([]models.SlotWindow, n)
	for i := range out {
		out[i] = models.SlotWindow{Date: date, Time: label}
	}
	return out
}

func TestCountAt(t *testing.T) {
	slots := append(slotsAt(3, "2024-10-11", "4:00 PM"), models.SlotWindow{Date: "2024-10-11", Time: "5:00 PM"})
	assert.Equal(t, 3, CountAt(slots, "2024-10-11", "4:00 PM"))
	assert.Equal(t, 1, CountAt(slots, "2024-10-11", "5:00 PM"))
	assert.Equal(t, 0, CountAt(slots, "2024-10-14", "4:00 PM"))
}

func TestValidateRejectionOrder(t *testing.T) {
	r := &AvailabilityResolver{Policy: testPolicy()}
	now := time.Date(2024, 10, 10, 9, 0, 0, 0, time.Local)
	req := func(date, label string) *models.BookingRequest {
		return &models.BookingRequest{Name: "Asha", Contact: "555-0101", Doctor: "Dr Kumar Awadhesh", Date: date, Time: label}
	}

	t.Run("malformed before anything else", func(t *testing.T) {
		verr := r.Validate(req("10/11/2024", "16:00"), nil, now)
		require.NotNil(t, verr)
		assert.Equal(t, CodeMalformed, verr.Code)
	})

	t.Run("missing identity is malformed", func(t *testing.T) {
		verr := r.Validate(&models.BookingRequest{Date: "2024-10-11", Time: "16:00"}, nil, now)
		require.NotNil(t, verr)
		assert.Equal(t, CodeMalformed, verr.Code)
	})

	t.Run("past beats out-of-hours", func(t *testing.T) {
		// 9 AM the previous day is both past and out of hours; past wins.
		verr := r.Validate(req("2024-10-09", "09:00"), nil, now)
		require.NotNil(t, verr)
		assert.Equal(t, CodeInPast, verr.Code)
	})

	t.Run("yesterday in hours is past", func(t *testing.T) {
		verr := r.Validate(req("2024-10-09", "16:00"), nil, now)
		require.NotNil(t, verr)
		assert.Equal(t, CodeInPast, verr.Code)
	})

	t.Run("now itself is not past, just out of hours", func(t *testing.T) {
		verr := r.Validate(req("2024-10-10", "09:00"), nil, now)
		require.NotNil(t, verr)
		assert.Equal(t, CodeOutOfHours, verr.Code)
	})

	t.Run("slot at capacity", func(t *testing.T) {
		slots := slotsAt(5, "2024-10-11", "4:00 PM")
		verr := r.Validate(req("2024-10-11", "16:00"), slots, now)
		require.NotNil(t, verr)
		assert.Equal(t, CodeSlotFull, verr.Code)
	})

	t.Run("valid slot passes", func(t *testing.T) {
		slots := slotsAt(4, "2024-10-11", "4:00 PM")
		assert.Nil(t, r.Validate(req("2024-10-11", "16:00"), slots, now))
	})
}

func TestNextAvailableSlot(t *testing.T) {
	r := &AvailabilityResolver{Policy: testPolicy()}

	t.Run("skips a full bucket to the next hour", func(t *testing.T) {
		slots := slotsAt(5, "2024-10-11", "4:00 PM")
		after := time.Date(2024, 10, 11, 16, 0, 0, 0, time.Local)
		got := r.NextAvailableSlot(after, slots)
		require.NotNil(t, got)
		assert.Equal(t, models.SlotWindow{Date: "2024-10-11", Time: "5:00 PM"}, *got)
	})

	t.Run("rolls over the weekend", func(t *testing.T) {
		// Friday evening after the last window; next chance is Monday.
		after := time.Date(2024, 10, 11, 18, 0, 0, 0, time.Local)
		got := r.NextAvailableSlot(after, nil)
		require.NotNil(t, got)
		assert.Equal(t, models.SlotWindow{Date: "2024-10-14", Time: "4:00 PM"}, *got)
	})

	t.Run("never earlier than the given instant", func(t *testing.T) {
		after := time.Date(2024, 10, 11, 16, 30, 0, 0, time.Local)
		got := r.NextAvailableSlot(after, nil)
		require.NotNil(t, got)
		assert.Equal(t, models.SlotWindow{Date: "2024-10-11", Time: "5:00 PM"}, *got)
	})

	t.Run("suggestion always passes validation", func(t *testing.T) {
		slots := slotsAt(5, "2024-10-11", "4:00 PM")
		after := time.Date(2024, 10, 11, 15, 0, 0, 0, time.Local)
		got := r.NextAvailableSlot(after, slots)
		require.NotNil(t, got)
		req := &models.BookingRequest{Name: "Asha", Contact: "555-0101", Date: got.Date, Time: got.Time}
		assert.Nil(t, r.Validate(req, slots, after))
	})

	t.Run("bounded horizon", func(t *testing.T) {
		closed := testPolicy()
		closed.MaxPerSlot = 0
		rc := &AvailabilityResolver{Policy: closed}
		after := time.Date(2024, 10, 11, 9, 0, 0, 0, time.Local)
		assert.Nil(t, rc.NextAvailableSlot(after, nil))
	})
}

func TestBookedSlots(t *testing.T) {
	repo := newFakeRepo()
	repo.appointments = []models.Appointment{
		{Name: "Asha", Contact: "555-0101", Date: "2024-10-11", Time: "4:00 PM"},
		{Name: "Ravi", Contact: "555-0102", Date: "2024-10-11", Time: "16:00"},
	}
	r := &AvailabilityResolver{Repo: repo, Policy: testPolicy()}

	slots, err := r.BookedSlots(context.Background())
	require.NoError(t, err)
	// Both spellings collapse to the same canonical bucket.
	assert.Equal(t, 2, CountAt(slots, "2024-10-11", "4:00 PM"))

	again, err := r.BookedSlots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, slots, again, "repeated reads with no inserts are identical")
}

func TestBookedSlotsPropagatesStoreError(t *testing.T) {
	repo := newFakeRepo()
	repo.findErr = assert.AnError
	r := &AvailabilityResolver{Repo: repo, Policy: testPolicy()}

	_, err := r.BookedSlots(context.Background())
	assert.Error(t, err)
}
