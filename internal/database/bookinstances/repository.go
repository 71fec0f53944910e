// Package bookinstances provides database operations for book copies.
package bookinstances

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

// Repository handles all book instance database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new book instances repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every copy with its book resolved.
func (r *Repository) List(ctx context.Context) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").Order("created_at ASC").Find(&instances).Error
	return instances, err
}

// GetByID retrieves a copy with its book resolved.
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	if err := r.db.WithContext(ctx).Preload("Book").First(&instance, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &instance, nil
}

// ListByBook returns every copy of a book.
func (r *Repository) ListByBook(ctx context.Context, bookID string) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).Where("book_id = ?", bookID).Order("created_at ASC").Find(&instances).Error
	return instances, err
}

// Create persists a new copy.
func (r *Repository) Create(ctx context.Context, instance *entities.BookInstance) error {
	return database.TranslateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(instance).Error)
}

// Replace overwrites the stored copy with the candidate's fields.
func (r *Repository) Replace(ctx context.Context, instance *entities.BookInstance) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.BookInstance
		if err := tx.First(&existing, "id = ?", instance.ID).Error; err != nil {
			return database.TranslateError(err)
		}
		instance.CreatedAt = existing.CreatedAt
		return database.TranslateError(tx.Omit(clause.Associations).Save(instance).Error)
	})
}

// Delete removes a copy.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.BookInstance{}, "id = ?", id).Error
}
