package booking

import (
	"testing"
	"time"

	"clinicdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() models.PracticePolicy {
	return models.PracticePolicy{
		PractitionerName: "Dr Kumar Awadhesh",
		HoursStart:       16,
		HoursEnd:         18,
		Weekdays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
		MaxPerSlot:        5,
		SearchHorizonDays: 30,
	}
}

func TestParseSlot(t *testing.T) {
	t.Run("24-hour format", func(t *testing.T) {
		got, err := ParseSlot("2024-10-10", "16:00")
		require.NoError(t, err)
		assert.Equal(t, 2024, got.Year())
		assert.Equal(t, time.October, got.Month())
		assert.Equal(t, 10, got.Day())
		assert.Equal(t, 16, got.Hour())
		assert.Equal(t, 0, got.Minute())
	})

	t.Run("12-hour label", func(t *testing.T) {
		got, err := ParseSlot("2024-10-10", "4:00 PM")
		require.NoError(t, err)
		assert.Equal(t, 16, got.Hour())
	})

	t.Run("lowercase meridiem", func(t *testing.T) {
		got, err := ParseSlot("2024-10-10", "4:00 pm")
		require.NoError(t, err)
		assert.Equal(t, 16, got.Hour())
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		_, err := ParseSlot("10/11/2024", "16:00")
		assert.Error(t, err)
	})

	t.Run("rejects malformed time", func(t *testing.T) {
		_, err := ParseSlot("2024-10-10", "teatime")
		assert.Error(t, err)
	})
}

func TestSlotLabelBucketsToHour(t *testing.T) {
	at := time.Date(2024, 10, 10, 16, 45, 0, 0, time.Local)
	assert.Equal(t, "4:00 PM", SlotLabel(at))
	assert.Equal(t, "2024-10-10", SlotDate(at))
}

func TestWithinBusinessHours(t *testing.T) {
	p := testPolicy()
	day := func(d, hour, min int) time.Time {
		return time.Date(2024, 10, d, hour, min, 0, 0, time.Local)
	}

	// 2024-10-10 is a Thursday, 2024-10-12 a Saturday.
	assert.True(t, WithinBusinessHours(day(10, 16, 0), p))
	assert.True(t, WithinBusinessHours(day(10, 17, 59), p))
	assert.False(t, WithinBusinessHours(day(10, 18, 0), p), "end of window is exclusive")
	assert.False(t, WithinBusinessHours(day(10, 15, 59), p))
	assert.False(t, WithinBusinessHours(day(10, 9, 0), p))
	assert.False(t, WithinBusinessHours(day(12, 16, 0), p), "Saturday is not bookable")
}

func TestInPast(t *testing.T) {
	now := time.Date(2024, 10, 10, 9, 0, 0, 0, time.Local)
	assert.True(t, InPast(now.Add(-time.Minute), now))
	assert.False(t, InPast(now, now), "a slot starting exactly now is still bookable")
	assert.False(t, InPast(now.Add(time.Minute), now))
}
