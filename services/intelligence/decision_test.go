// File: services/intelligence/decision_test.go
package ai

import (
	"testing"

	"clinicdesk/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireMalformed(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	be, ok := booking.AsBookingError(err)
	require.True(t, ok, "expected a BookingError, got %T", err)
	assert.Equal(t, booking.CodeMalformedModelOutput, be.Code)
}

func TestParseDecisionReplyOnly(t *testing.T) {
	decision, err := ParseDecision(`{"reply": "What date works for you?", "query": null}`)
	require.NoError(t, err)
	assert.Equal(t, "What date works for you?", decision.Reply)
	assert.Nil(t, decision.Booking)
}

func TestParseDecisionWithBooking(t *testing.T) {
	raw := `{"reply": "Booked!", "query": {"name": "Asha", "contact": "555-0101", "doctor": "Dr Kumar Awadhesh", "time": "16:00", "date": "2024-10-11"}}`
	decision, err := ParseDecision(raw)
	require.NoError(t, err)
	require.NotNil(t, decision.Booking)
	assert.Equal(t, "Asha", decision.Booking.Name)
	assert.Equal(t, "2024-10-11", decision.Booking.Date)
	assert.Equal(t, "16:00", decision.Booking.Time)
}

func TestParseDecisionStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"reply\": \"Hello\", \"query\": null}\n```"
	decision, err := ParseDecision(raw)
	require.NoError(t, err)
	assert.Equal(t, "Hello", decision.Reply)
}

func TestParseDecisionRejectsDeviations(t *testing.T) {
	cases := map[string]string{
		"not json at all":       `sure, I can book that for you`,
		"wrong date format":     `{"reply": "ok", "query": {"name": "A", "contact": "1", "doctor": "D", "time": "16:00", "date": "10/11/2024"}}`,
		"unparseable time":      `{"reply": "ok", "query": {"name": "A", "contact": "1", "doctor": "D", "time": "just after lunch", "date": "2024-10-11"}}`,
		"extra top-level field": `{"reply": "ok", "query": null, "confidence": 0.9}`,
		"missing query field":   `{"reply": "ok"}`,
		"query of wrong type":   `{"reply": "ok", "query": "book it"}`,
		"reply of wrong type":   `{"reply": 42, "query": null}`,
		"extra query field":     `{"reply": "ok", "query": {"name": "A", "contact": "1", "doctor": "D", "time": "16:00", "date": "2024-10-11", "notes": "vip"}}`,
		"missing booking field": `{"reply": "ok", "query": {"name": "A", "contact": "1", "time": "16:00", "date": "2024-10-11"}}`,
		"empty name":            `{"reply": "ok", "query": {"name": "", "contact": "1", "doctor": "D", "time": "16:00", "date": "2024-10-11"}}`,
		"control character":     "{\"reply\": \"ok\x01\", \"query\": null}",
		"trailing content":      `{"reply": "ok", "query": null}{"reply": "again", "query": null}`,
		"empty output":          ``,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			decision, err := ParseDecision(raw)
			assert.Nil(t, decision)
			requireMalformed(t, err)
		})
	}
}
