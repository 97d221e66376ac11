package ports

import (
	"context"

	"github.com/brightpaths/org-system/internal/core/domain"
)

// AuditSink receives structured audit events. Record is fire-and-forget:
// implementations must never block the calling operation, and failures are
// absorbed (logged) rather than surfaced.
type AuditSink interface {
	Record(event domain.AuditEvent)
}

// AuditRepository is the append-only store behind the audit sink.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
