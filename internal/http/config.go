package http

import (
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/validation"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Stores
	Genres        GenreStore
	Books         BookStore
	Authors       AuthorStore
	BookInstances BookInstanceStore
	Stats         CatalogCounter

	// Database is only used by the health check.
	Database *database.Database
	// HealthChecks are reported by /health next to the database.
	HealthChecks map[string]HealthCheck

	Validator *validation.Validator
	Auditor   Auditor

	// Sessions and flash messages; nil disables them.
	Sessions SessionMiddleware

	// CSRF protection is enabled when the secret is set.
	CSRFSecret    []byte
	SecureCookies bool

	// UI paths. An empty TemplatesPath uses the embedded templates.
	TemplatesPath string
	StaticPath    string

	Version string
}
