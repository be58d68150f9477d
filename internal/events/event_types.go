package events

import "time"

// EventType enumerates auth telemetry events.
type EventType string

const (
	EventLoginSucceeded EventType = "auth.login.succeeded"
	EventLoginFailed    EventType = "auth.login.failed"
	EventTokenRejected  EventType = "auth.token.rejected"
	EventAccessDenied   EventType = "auth.access.denied"
)

// Event carries the facts of a single auth decision. Reason distinguishes
// the token failure kinds (malformed, signature, expired) that the HTTP
// layer reports uniformly.
type Event struct {
	Type       EventType
	SubjectID  string
	Role       string
	Path       string
	Method     string
	Reason     string
	OccurredAt time.Time
}
