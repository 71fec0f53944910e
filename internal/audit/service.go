// Package audit records who changed what in the catalog.
package audit

import (
	"context"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event synchronously.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// The request context is not used since it is cancelled once the response is written.
// Pending writes are awaited by Drain.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(context.Background(), event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Drain waits for background writes started by LogAsync. It returns false
// when ctx expires first.
func (s *Service) Drain(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

// LogCreate records creation of a catalog entity.
func (s *Service) LogCreate(kind entities.Kind, id, name, ipAddr string) {
	s.LogAsync(s.mutation(entities.AuditEventCreate, kind, id, "Created "+string(kind)+": "+name, ipAddr))
}

// LogUpdate records a full replace of a catalog entity.
func (s *Service) LogUpdate(kind entities.Kind, id, name, ipAddr string) {
	s.LogAsync(s.mutation(entities.AuditEventUpdate, kind, id, "Updated "+string(kind)+": "+name, ipAddr))
}

// LogDelete records removal of a catalog entity.
func (s *Service) LogDelete(kind entities.Kind, id, name, ipAddr string) {
	s.LogAsync(s.mutation(entities.AuditEventDelete, kind, id, "Deleted "+string(kind)+": "+name, ipAddr))
}

func (s *Service) mutation(eventType entities.AuditEventType, kind entities.Kind, id, description, ipAddr string) *entities.AuditEvent {
	return &entities.AuditEvent{
		EventType:   eventType,
		Action:      string(kind) + "_" + string(eventType),
		Description: truncate(description, 500),
		EntityType:  kind,
		EntityID:    id,
		IPAddress:   ipAddr,
		Status:      entities.AuditStatusSuccess,
	}
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, limit, offset)
}

// History returns the recorded changes of one entity.
func (s *Service) History(ctx context.Context, kind entities.Kind, id string) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(ctx, kind, id)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
