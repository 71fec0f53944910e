package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8189), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "", cfg.UI.TemplatesPath)
	assert.Equal(t, 24*time.Hour, cfg.Session.Lifetime)
	assert.True(t, cfg.Session.SecureCookies)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Audit.CleanupSchedule)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/catalog.db")
	t.Setenv("SECURE_COOKIES", "false")
	t.Setenv("TASK_RELEASE_AFTER", "5m")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
	assert.False(t, cfg.Session.SecureCookies)
	assert.Equal(t, 5*time.Minute, cfg.Tasks.ReleaseAfter)
}
