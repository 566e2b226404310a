package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus is the state of a delivery obligation.
type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "pending"
	OutboxStatusProcessing OutboxStatus = "processing"
	OutboxStatusDone       OutboxStatus = "done"
	OutboxStatusDead       OutboxStatus = "dead"
)

func (s OutboxStatus) String() string { return string(s) }

func (s OutboxStatus) IsValid() bool {
	switch s {
	case OutboxStatusPending, OutboxStatusProcessing, OutboxStatusDone, OutboxStatusDead:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s OutboxStatus) IsTerminal() bool {
	return s == OutboxStatusDone || s == OutboxStatusDead
}

// CanTransitionTo encodes the outbox state machine:
//
//	pending    -> processing
//	processing -> done | pending | dead
func (s OutboxStatus) CanTransitionTo(next OutboxStatus) bool {
	switch s {
	case OutboxStatusPending:
		return next == OutboxStatusProcessing
	case OutboxStatusProcessing:
		return next == OutboxStatusDone || next == OutboxStatusPending || next == OutboxStatusDead
	}
	return false
}

// JobTypeNotificationDispatch is the only outbox job kind currently emitted.
const JobTypeNotificationDispatch = "notification_dispatch"

// OutboxMaxAttempts is the delivery attempt ceiling. After the fifth failed
// attempt a record transitions to dead and is never retried.
const OutboxMaxAttempts = 5

// backoffMinutes is the delay before attempt N (1-based), indexed by
// min(N-1, 3). All attempts past the fourth wait 60 minutes.
var backoffMinutes = [4]int{1, 5, 15, 60}

// OutboxBackoff returns the delay before delivery attempt n (1-based).
func OutboxBackoff(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	idx := n - 1
	if idx > len(backoffMinutes)-1 {
		idx = len(backoffMinutes) - 1
	}
	return time.Duration(backoffMinutes[idx]) * time.Minute
}

// OutboxID derives the deterministic identity of the delivery obligation
// for an event. Duplicate creation attempts for the same (org, event) pair
// collapse to the same record; do not substitute a random id.
func OutboxID(orgID, eventID uuid.UUID) string {
	return fmt.Sprintf("notif:%s:%s", orgID, eventID)
}

// OutboxRecord is a durable delivery obligation derived from a DomainEvent.
// It references the event by id but does not own it: the event persists
// even when the record reaches a terminal state.
type OutboxRecord struct {
	ID             string
	OrganizationID uuid.UUID
	EventID        uuid.UUID
	JobType        string
	Status         OutboxStatus
	Attempts       int
	MaxAttempts    int
	NextAttemptAt  time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewOutboxRecord builds the initial pending record for an event.
func NewOutboxRecord(orgID, eventID uuid.UUID, now time.Time) OutboxRecord {
	return OutboxRecord{
		ID:             OutboxID(orgID, eventID),
		OrganizationID: orgID,
		EventID:        eventID,
		JobType:        JobTypeNotificationDispatch,
		Status:         OutboxStatusPending,
		Attempts:       0,
		MaxAttempts:    OutboxMaxAttempts,
		NextAttemptAt:  now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
