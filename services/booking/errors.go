package booking

import (
	"errors"
	"fmt"
)

// Failure codes for booking and conversation turns.
const (
	CodeMalformed            = "malformed"
	CodeInPast               = "in_past"
	CodeOutOfHours           = "out_of_hours"
	CodeSlotFull             = "slot_full"
	CodeUpstreamTimeout      = "upstream_timeout"
	CodeUpstreamUnavailable  = "upstream_unavailable"
	CodeSessionBusy          = "session_busy"
	CodeMalformedModelOutput = "malformed_model_output"
)

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewBookingError(code, msg string) *BookingError {
	return &BookingError{Code: code, Message: msg}
}

// AsBookingError unwraps err into a BookingError if there is one.
func AsBookingError(err error) (*BookingError, bool) {
	var be *BookingError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
