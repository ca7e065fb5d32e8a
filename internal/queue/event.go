// Package queue defines the activity events exchanged over the message broker
// and the background consumer that records them.
package queue

import "time"

// EventType names what happened to a repository.
type EventType string

const (
	EventRepositoryRegistered EventType = "repository.registered"
	EventContentReconciled    EventType = "repository.content_reconciled"
	EventRepositoryDeleted    EventType = "repository.deleted"
)

// RepositoryEvent is published after a repository is registered, has its
// contents reconciled, or is deleted. It carries enough for the activity log
// without querying the primary database.
type RepositoryEvent struct {
	Type         EventType `json:"type"`
	RepositoryID string    `json:"repository_id"`
	RequesterID  string    `json:"requester_id"`
	Name         string    `json:"name,omitempty"`
	Inserted     []string  `json:"inserted,omitempty"` // content titles added
	Deleted      []string  `json:"deleted,omitempty"`  // content titles removed
	OccurredAt   string    `json:"occurred_at"`        // RFC3339, UTC
}

// NewRepositoryEvent stamps an event with the current time.
func NewRepositoryEvent(t EventType, repositoryID, requesterID string) RepositoryEvent {
	return RepositoryEvent{
		Type:         t,
		RepositoryID: repositoryID,
		RequesterID:  requesterID,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
}
