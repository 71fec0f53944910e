package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "audit.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func TestRepository_LogEvent(t *testing.T) {
	repo := setupTestDB(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "genre_create",
		Description: "Created genre: Fantasy",
		EntityType:  entities.KindGenre,
		EntityID:    "g1",
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(context.Background(), event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		event := &entities.AuditEvent{
			EventType: entities.AuditEventUpdate,
			Action:    "genre_update",
			Status:    entities.AuditStatusSuccess,
			CreatedAt: time.Now().Add(time.Duration(-i) * time.Hour),
		}
		require.NoError(t, repo.LogEvent(ctx, event))
	}

	events, total, err := repo.GetEvents(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, events, 10)
	assert.True(t, events[0].CreatedAt.After(events[1].CreatedAt))

	events, _, err = repo.GetEvents(ctx, 10, 10)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestRepository_GetEventsForEntity(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{EntityType: entities.KindGenre, EntityID: "g1", Action: "genre_create"}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{EntityType: entities.KindGenre, EntityID: "g2", Action: "genre_create"}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{EntityType: entities.KindBook, EntityID: "g1", Action: "book_create"}))

	events, err := repo.GetEventsForEntity(ctx, entities.KindGenre, "g1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "genre_create", events[0].Action)
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{Action: "old", CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{Action: "new", CreatedAt: now.Add(-1 * time.Hour)}))

	deleted, err := repo.DeleteOldEvents(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, total, err := repo.GetEvents(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "new", events[0].Action)
}
