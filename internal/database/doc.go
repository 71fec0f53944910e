// Package database provides the data access layer for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, error translation
//	├── seed.go          # Sample catalog for the seed command
//	├── genres/          # Genre CRUD and lookup by name
//	├── authors/         # Author CRUD
//	├── books/           # Book CRUD, genre associations, dependents lookups
//	├── bookinstances/   # Book copy CRUD
//	├── audit/           # Audit trail of catalog mutations
//	└── stats/           # Aggregate counts for the catalog home page
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./library.db")
//
//	genresRepo := genres.NewRepository(db.DB)
//	genre, err := genresRepo.GetByID(ctx, id)
//
// Lookups by identifier return an error wrapping entities.ErrNotFound when no
// record matches. Writes that collide with a unique index return an error
// wrapping entities.ErrDuplicate.
//
// # Adding a New Entity
//
//  1. Add the model to internal/entities and to the AutoMigrate list in NewDatabase
//  2. Create a new sub-package: internal/database/<entity>/
//  3. Define a Repository struct with a *gorm.DB field and NewRepository(db *gorm.DB)
//  4. Add compile-time interface checks in internal/http/stores.go
package database
