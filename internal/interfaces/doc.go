// Package interfaces documents the core abstractions used throughout the application.
//
// Interfaces are declared by the package that consumes them; this package only
// holds compile-time checks that the concrete implementations still satisfy them.
//
// # Interface Categories
//
// ## Catalog Stores
//
//   - GenreStore, BookStore, AuthorStore, BookInstanceStore (internal/http/stores.go)
//   - CatalogCounter: counts for the index page (internal/http/stores.go)
//
// ## Request Plumbing
//
//   - Auditor: records create/update/delete (internal/http/stores.go)
//   - SessionMiddleware: sessions and flash messages across redirects (internal/http/router.go)
//   - AuditTrail: history on detail pages, recent changes on the index (internal/http/stores.go)
//
// ## Background Jobs
//
//   - AuditEventCleaner: retention cleanup target (internal/tasks/cleanup_audit.go)
//   - CleanupEnqueuer: what the cron scheduler enqueues into (internal/scheduler)
//
// # Adding a New Catalog Entity
//
//  1. Add the model to internal/entities and to the AutoMigrate list in
//     internal/database/database.go.
//
//  2. Create a repository sub-package: internal/database/<kind>s/
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface next to its controller in internal/http and
//     register the routes with registerCRUD in router.go.
//
//  4. Add the validation policy to internal/validation/policies.go.
//
//  5. Add a compile-time check to checks.go:
//
//     var _ http.PublisherStore = (*publishers.Repository)(nil)
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// A missing method then fails the build instead of a request.
package interfaces
