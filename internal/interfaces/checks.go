package interfaces

import (
	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/bookinstances"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/genres"
	"github.com/mrlokans/library/internal/database/stats"
	"github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/session"
	"github.com/mrlokans/library/internal/tasks"
)

// =============================================================================
// Catalog Stores
// =============================================================================

var _ http.GenreStore = (*genres.Repository)(nil)
var _ http.BookStore = (*books.Repository)(nil)
var _ http.AuthorStore = (*authors.Repository)(nil)
var _ http.BookInstanceStore = (*bookinstances.Repository)(nil)

// CatalogCounter implementations
var _ http.CatalogCounter = (*stats.Repository)(nil)

// =============================================================================
// Request Plumbing
// =============================================================================

// Auditor implementations
var _ http.Auditor = (*audit.Service)(nil)

// SessionMiddleware implementations
var _ http.SessionMiddleware = (*session.Manager)(nil)

// =============================================================================
// Background Jobs
// =============================================================================

// AuditEventCleaner implementations
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// CleanupEnqueuer implementations
var _ scheduler.CleanupEnqueuer = (*tasks.Client)(nil)
