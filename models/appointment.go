package models

import "time"

// Appointment is a confirmed booking record. Appointments are append-only
// facts: nothing in the service mutates one after it is written.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`           // Unique appointment identifier (UUID)
	Name      string    `bson:"name" json:"name"`       // Patient name
	Contact   string    `bson:"contact" json:"contact"` // Patient phone or other identifier, free-form
	Doctor    string    `bson:"doctor" json:"doctor"`   // Practitioner identifier
	Date      string    `bson:"date" json:"date"`       // Appointment date in "YYYY-MM-DD" format
	Time      string    `bson:"time" json:"time"`       // Hour-bucket slot label, e.g. "4:00 PM"
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// SlotWindow is a derived (date, time) candidate. Never persisted; recomputed
// from the appointment collection on demand.
type SlotWindow struct {
	Date string `bson:"date" json:"date"`
	Time string `bson:"time" json:"time"`
}

// BookingRequest is the booking portion of a conversational turn, exactly as
// produced by the model. It is untrusted input until validated.
type BookingRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Doctor  string `json:"doctor"`
	Date    string `json:"date"` // "YYYY-MM-DD"
	Time    string `json:"time"`
}
