package bootstrap

import "context"

// AuditLog is a lifecycle event of the process itself, separate from the
// per-entity change log kept in the outbox.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
