// Package authors provides database operations for author management.
package authors

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every author sorted by family name.
func (r *Repository) List(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.WithContext(ctx).Order("family_name ASC, first_name ASC").Find(&authors).Error
	return authors, err
}

// GetByID retrieves an author by its identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &author, nil
}

// Create persists a new author.
func (r *Repository) Create(ctx context.Context, author *entities.Author) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(author).Error)
}

// Replace overwrites the stored author with the candidate's fields.
func (r *Repository) Replace(ctx context.Context, author *entities.Author) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Author
		if err := tx.First(&existing, "id = ?", author.ID).Error; err != nil {
			return database.TranslateError(err)
		}
		author.CreatedAt = existing.CreatedAt
		return database.TranslateError(tx.Save(author).Error)
	})
}

// Delete removes an author.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.Author{}, "id = ?", id).Error
}
