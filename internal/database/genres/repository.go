// Package genres provides database operations for genre management.
//
// This package implements the GenreStore interface defined in internal/http/genres.go.
//
// # Usage
//
//	repo := genres.NewRepository(db)
//	genre, err := repo.FindByName(ctx, "Fantasy")
package genres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every genre sorted by name.
func (r *Repository) List(ctx context.Context) ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

// GetByID retrieves a genre by its identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.WithContext(ctx).First(&genre, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &genre, nil
}

// FindByName returns the genre with exactly this name, or nil when none exists.
func (r *Repository) FindByName(ctx context.Context, name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// Create persists a new genre and assigns its identifier.
func (r *Repository) Create(ctx context.Context, genre *entities.Genre) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(genre).Error)
}

// Replace overwrites the stored genre with the candidate's fields.
func (r *Repository) Replace(ctx context.Context, genre *entities.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Genre
		if err := tx.First(&existing, "id = ?", genre.ID).Error; err != nil {
			return database.TranslateError(err)
		}
		genre.CreatedAt = existing.CreatedAt
		return database.TranslateError(tx.Save(genre).Error)
	})
}

// Delete removes a genre. Deleting a missing genre is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.Genre{}, "id = ?", id).Error
}
