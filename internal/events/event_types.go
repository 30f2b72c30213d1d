package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventVerificationLinkIssued EventType = "verification_link_issued"
	EventVerificationSucceeded  EventType = "verification_succeeded"
	EventVerificationRejected   EventType = "verification_rejected"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New builds an event with a fresh id and timestamp.
func New(eventType EventType, subjectID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// LinkIssuedPayload payload.
type LinkIssuedPayload struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerificationSucceededPayload payload.
type VerificationSucceededPayload struct {
	GuildID string `json:"guild_id"`
	RoleID  string `json:"role_id"`
}

// VerificationRejectedPayload payload.
type VerificationRejectedPayload struct {
	Reason string `json:"reason"`
}
