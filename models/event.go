package models

import (
	"encoding/json"
	"time"
)

// EventKind names an observable notification emitted by the warden.
// Events are informational only: they are persisted outside the control flow
// of the operation that produced them and delivered best-effort.
type EventKind string

const (
	// EventRequestCreated is emitted when a proposal is accepted and stored.
	EventRequestCreated EventKind = "request.created"
	// EventRequestCancelled is emitted when a pending request is cancelled
	// (signed-owner policy only).
	EventRequestCancelled EventKind = "request.cancelled"
	// EventDelayChanged is emitted when a vault changes its delay.
	EventDelayChanged EventKind = "delay.changed"
	// EventProposerAdded is emitted when a vault adds an allowlist member.
	EventProposerAdded EventKind = "proposer.added"
	// EventProposerRemoved is emitted when a vault removes an allowlist member.
	EventProposerRemoved EventKind = "proposer.removed"
)

// Event is one persisted notification awaiting webhook delivery.
type Event struct {
	// EventID is a v4 UUID assigned at creation.
	EventID string `json:"event_id"`

	// VaultID is the vault the notification concerns.
	VaultID Identity `json:"vault_id"`

	// Kind classifies the notification.
	Kind EventKind `json:"kind"`

	// Payload carries kind-specific detail (request id, new delay, proposer
	// address, …) as a JSON object.
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the time the event was recorded.
	CreatedAt time.Time `json:"created_at"`

	// DispatchedAt is the time the event was delivered to the webhook,
	// or nil while it is still queued.
	DispatchedAt *time.Time `json:"dispatched_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the Event model.
func (e Event) TableName() string {
	return "events"
}
