package events

import "time"

const EntityChangedTopic = "retail.entity.changed.v1"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EntityChangedEvent is recorded for every committed mutation.
type EntityChangedEvent struct {
	EventType  string    `json:"event_type"`
	Resource   string    `json:"resource"`
	Key        string    `json:"key"`
	BusinessID string    `json:"business_id,omitempty"`
	BranchID   string    `json:"branch_id,omitempty"`
	ActorID    string    `json:"actor_id"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventType is "<resource>.<action>", e.g. "branches.created".
func EventType(resource, action string) string {
	return resource + "." + action
}
