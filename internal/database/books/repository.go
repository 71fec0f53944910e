// Package books provides database operations for books and their genre associations.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	books, err := repo.ListByGenre(ctx, genreID)
package books

import (
	"context"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every book with its author, sorted by title.
func (r *Repository) List(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Preload("Author").Order("title ASC").Find(&books).Error
	return books, err
}

// ListTitles returns books projected to identifier and title, for select inputs.
func (r *Repository) ListTitles(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Select("id", "title").Order("title ASC").Find(&books).Error
	return books, err
}

// GetByID retrieves a book with its author and genres.
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Preload("Author").Preload("Genres", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).First(&book, "id = ?", id).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &book, nil
}

// ListByGenre returns books tagged with the genre.
func (r *Repository) ListByGenre(ctx context.Context, genreID string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Joins("JOIN book_genres ON book_genres.book_id = books.id").
		Where("book_genres.genre_id = ?", genreID).
		Order("books.title ASC").
		Find(&books).Error
	return books, err
}

// ListByAuthor returns books written by the author.
func (r *Repository) ListByAuthor(ctx context.Context, authorID string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Order("title ASC").Find(&books).Error
	return books, err
}

// Create persists a new book. Genres are matched by identifier; unknown
// identifiers are dropped.
func (r *Repository) Create(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres, err := resolveGenres(tx, book.Genres)
		if err != nil {
			return err
		}
		book.Genres = nil
		if err := tx.Omit(clause.Associations).Create(book).Error; err != nil {
			return database.TranslateError(err)
		}
		return replaceGenres(tx, book, genres)
	})
}

// Replace overwrites the stored book, including its genre set.
func (r *Repository) Replace(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Book
		if err := tx.First(&existing, "id = ?", book.ID).Error; err != nil {
			return database.TranslateError(err)
		}
		genres, err := resolveGenres(tx, book.Genres)
		if err != nil {
			return err
		}
		book.Genres = nil
		book.CreatedAt = existing.CreatedAt
		if err := tx.Omit(clause.Associations).Save(book).Error; err != nil {
			return database.TranslateError(err)
		}
		return replaceGenres(tx, book, genres)
	})
}

// Delete removes a book and its genre links.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Book{ID: id}).Association("Genres").Clear(); err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, "id = ?", id).Error
	})
}

func resolveGenres(tx *gorm.DB, requested []entities.Genre) ([]entities.Genre, error) {
	ids := lo.Uniq(lo.FilterMap(requested, func(g entities.Genre, _ int) (string, bool) {
		return g.ID, g.ID != ""
	}))
	if len(ids) == 0 {
		return nil, nil
	}
	var genres []entities.Genre
	err := tx.Where("id IN ?", ids).Order("name ASC").Find(&genres).Error
	return genres, err
}

func replaceGenres(tx *gorm.DB, book *entities.Book, genres []entities.Genre) error {
	assoc := tx.Model(book).Association("Genres")
	if len(genres) == 0 {
		if err := assoc.Clear(); err != nil {
			return err
		}
		book.Genres = nil
		return nil
	}
	if err := assoc.Replace(genres); err != nil {
		return err
	}
	book.Genres = genres
	return nil
}
