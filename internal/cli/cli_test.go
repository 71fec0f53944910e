package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

func TestSeedCommand_ParseFlags(t *testing.T) {
	cmd := NewSeedCommand()
	require.NoError(t, cmd.ParseFlags(nil))
	assert.Equal(t, config.DefaultDatabasePath, cmd.DatabasePath)

	require.NoError(t, cmd.ParseFlags([]string{"-db", "/tmp/other.db", "-verbose"}))
	assert.Equal(t, "/tmp/other.db", cmd.DatabasePath)
	assert.True(t, cmd.Verbose)
}

func TestSeedCommand_Run(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")

	cmd := NewSeedCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-db", dbPath}))
	require.NoError(t, cmd.Run())
	// Seeding twice leaves the catalog unchanged.
	require.NoError(t, cmd.Run())

	db, err := database.NewDatabase(dbPath, database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	defer db.Close()

	var books int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&books).Error)
	assert.Equal(t, int64(3), books)
}

func TestCleanupAuditCommand_ParseFlags(t *testing.T) {
	cmd := NewCleanupAuditCommand()
	require.NoError(t, cmd.ParseFlags(nil))
	assert.Equal(t, 30, cmd.RetentionDays)

	assert.Error(t, NewCleanupAuditCommand().ParseFlags([]string{"-days", "0"}))
}

func TestCleanupAuditCommand_Run(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	db, err := database.NewDatabase(dbPath, database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, db.DB.WithContext(ctx).Create(&entities.AuditEvent{
		EventType: entities.AuditEventDelete,
		Action:    "genre_delete",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-10 * 24 * time.Hour),
	}).Error)
	require.NoError(t, db.Close())

	cmd := NewCleanupAuditCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-db", dbPath, "-days", "7"}))

	deleted, err := cmd.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
