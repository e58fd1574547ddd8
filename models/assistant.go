package models

import "time"

// Turn roles in a conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one utterance in a conversation, by either party.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Session is the ordered conversational history for one user interaction
// stream. Sessions are transient: an idle session is evicted after its TTL
// and a crash loses in-flight conversation, never committed bookings.
type Session struct {
	ID         string    `json:"id"`
	Turns      []Turn    `json:"turns"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
}

// BookingDecision is the parsed output of one conversational turn: a reply
// for the user plus an optional booking request.
type BookingDecision struct {
	Reply   string          `json:"reply"`
	Booking *BookingRequest `json:"booking,omitempty"`
}

// ChatRequest is the payload coming from the frontend into /api/assistant/chat.
type ChatRequest struct {
	SessionID  string `json:"sessionId,omitempty"`
	UserPrompt string `json:"userPrompt"`
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	SessionID string          `json:"sessionId"`
	Reply     string          `json:"reply"`
	Booking   *BookingRequest `json:"booking"`
	Outcome   string          `json:"outcome"` // "booked", "rejected", "none" or "error"
	Reason    string          `json:"reason,omitempty"`
	NextSlot  *SlotWindow     `json:"nextSlot,omitempty"`
}
