package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEntrySubmitted EventType = "entry_submitted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EntrySubmittedPayload payload.
type EntrySubmittedPayload struct {
	EntryID     string `json:"entry_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department,omitempty"`
	SubmittedBy string `json:"submitted_by"`
}
