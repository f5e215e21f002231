package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
	"github.com/studentregistry/registry-api/internal/metrics"
)

// AuditService writes the append-only audit trail. Writes are fire-and-forget:
// any failure is logged to the diagnostic channel and discarded, so the
// triggering domain operation never observes it. At-most-once, no retry.
type AuditService struct {
	entries ports.AuditRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewAuditService(entries ports.AuditRepository, users ports.UserRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{entries: entries, users: users, logger: logger}
}

// Record persists one immutable entry attributed to actingUsername. An empty
// or unknown username (including the SYSTEM sentinel) records a nil actor.
func (s *AuditService) Record(ctx context.Context, actingUsername, action string, details map[string]any) {
	var userID *int64
	if actingUsername != "" {
		user, err := s.users.FindByUsername(ctx, actingUsername)
		if err == nil {
			userID = &user.ID
		}
	}

	entry := &domain.AuditEntry{
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
	if err := s.entries.Insert(ctx, entry); err != nil {
		metrics.AuditWriteFailuresTotal.WithLabelValues(action).Inc()
		s.logger.Warn().Err(err).
			Str("action", action).
			Str("actor", actingUsername).
			Msg("audit write failed, discarding")
		return
	}
	metrics.AuditEntriesTotal.WithLabelValues(action).Inc()
}

// DetachActor clears the actor reference on every entry attributed to the
// given user id. Called after the account itself is deleted; like Record,
// failures are logged and absorbed so the delete never rolls back over it.
func (s *AuditService) DetachActor(ctx context.Context, userID int64) {
	if err := s.entries.DetachUser(ctx, userID); err != nil {
		s.logger.Warn().Err(err).
			Int64("userId", userID).
			Msg("audit actor detach failed")
	}
}

// Query returns a page of entries, most recent first. Filters are optional
// and AND-combined.
func (s *AuditService) Query(ctx context.Context, filter ports.LogFilter, page ports.PageRequest) ([]domain.AuditEntry, int64, error) {
	return s.entries.List(ctx, filter, page.Normalize())
}

func (s *AuditService) Get(ctx context.Context, id int64) (*domain.AuditEntry, error) {
	return s.entries.FindByID(ctx, id)
}
