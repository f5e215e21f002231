package ports

import (
	"context"
	"time"

	"github.com/studentregistry/registry-api/internal/core/domain"
)

// AuditRepository is the persistence port for the audit trail. Entries are
// append-only except for DetachUser, which clears the actor reference when
// the referenced account is deleted.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	FindByID(ctx context.Context, id int64) (*domain.AuditEntry, error)
	List(ctx context.Context, filter LogFilter, page PageRequest) ([]domain.AuditEntry, int64, error)
	DetachUser(ctx context.Context, userID int64) error
}

// LogFilter narrows audit queries; filters are independently optional and
// AND-combined.
type LogFilter struct {
	Action string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

// AuditLogger is the side-effect sink injected into every domain service.
// Neither method may fail the caller: persistence faults are absorbed.
// DetachActor nulls the actor reference on historical entries after the
// referenced account is deleted, so "deleted user" stays representable.
type AuditLogger interface {
	Record(ctx context.Context, actingUsername, action string, details map[string]any)
	DetachActor(ctx context.Context, userID int64)
}

// AuditService adds the read side used by the admin log endpoints.
type AuditService interface {
	AuditLogger
	Query(ctx context.Context, filter LogFilter, page PageRequest) ([]domain.AuditEntry, int64, error)
	Get(ctx context.Context, id int64) (*domain.AuditEntry, error)
}
