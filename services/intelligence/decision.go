// File: services/intelligence/decision.go
package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"clinicdesk/models"
	"clinicdesk/services/booking"
)

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDecision decodes the raw model output into a BookingDecision. The
// model is an untrusted producer: anything that is not exactly a two-field
// {reply, query} object with a well-formed query fails as malformed model
// output, never as a best-effort booking.
func ParseDecision(raw string) (*models.BookingDecision, error) {
	cleaned := stripFences(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil, malformedOutput("empty model output")
	}
	for _, r := range cleaned {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			return nil, malformedOutput("control character in model output")
		}
	}

	var outer struct {
		Reply *string         `json:"reply"`
		Query json.RawMessage `json:"query"`
	}
	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&outer); err != nil {
		return nil, malformedOutput("output is not a {reply, query} object: " + err.Error())
	}
	if dec.More() {
		return nil, malformedOutput("trailing content after the decision object")
	}
	if outer.Reply == nil || outer.Query == nil {
		return nil, malformedOutput("reply and query fields are both required")
	}

	decision := &models.BookingDecision{Reply: *outer.Reply}
	if string(outer.Query) == "null" {
		return decision, nil
	}

	var q struct {
		Name    *string `json:"name"`
		Contact *string `json:"contact"`
		Doctor  *string `json:"doctor"`
		Time    *string `json:"time"`
		Date    *string `json:"date"`
	}
	qdec := json.NewDecoder(strings.NewReader(string(outer.Query)))
	qdec.DisallowUnknownFields()
	if err := qdec.Decode(&q); err != nil {
		return nil, malformedOutput("query is not a booking object: " + err.Error())
	}
	if q.Name == nil || q.Contact == nil || q.Doctor == nil || q.Time == nil || q.Date == nil {
		return nil, malformedOutput("query is missing booking fields")
	}
	if *q.Name == "" || *q.Contact == "" {
		return nil, malformedOutput("query has empty name or contact")
	}
	if !dateShape.MatchString(*q.Date) {
		return nil, malformedOutput("query date is not yyyy-mm-dd")
	}
	if _, err := booking.ParseSlot(*q.Date, *q.Time); err != nil {
		return nil, malformedOutput("query date or time does not parse")
	}

	decision.Booking = &models.BookingRequest{
		Name:    *q.Name,
		Contact: *q.Contact,
		Doctor:  *q.Doctor,
		Date:    *q.Date,
		Time:    *q.Time,
	}
	return decision, nil
}

// stripFences removes a markdown code fence the model sometimes wraps the
// JSON in, with or without a language tag.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func malformedOutput(msg string) error {
	return booking.NewBookingError(booking.CodeMalformedModelOutput, msg)
}
