package books

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "books.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db.DB, NewRepository(db.DB)
}

func createGenre(t *testing.T, db *gorm.DB, name string) entities.Genre {
	t.Helper()
	genre := entities.Genre{Name: name}
	require.NoError(t, db.Create(&genre).Error)
	return genre
}

func createAuthor(t *testing.T, db *gorm.DB) entities.Author {
	t.Helper()
	author := entities.Author{FirstName: "Ursula", FamilyName: "LeGuin"}
	require.NoError(t, db.Create(&author).Error)
	return author
}

func TestRepository_CreateWithGenres(t *testing.T) {
	db, repo := setupTestDB(t)
	ctx := context.Background()

	fantasy := createGenre(t, db, "Fantasy")
	scifi := createGenre(t, db, "Science Fiction")
	author := createAuthor(t, db)

	book := &entities.Book{
		Title:    "The Left Hand of Darkness",
		AuthorID: author.ID,
		Summary:  "Gethen",
		ISBN:     "9780441478125",
		Genres:   []entities.Genre{{ID: scifi.ID}, {ID: fantasy.ID}, {ID: "unknown"}},
	}
	require.NoError(t, repo.Create(ctx, book))
	assert.NotEmpty(t, book.ID)

	found, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "LeGuin, Ursula", found.Author.Name())
	require.Len(t, found.Genres, 2)
	assert.Equal(t, "Fantasy", found.Genres[0].Name)
	assert.Equal(t, "Science Fiction", found.Genres[1].Name)
}

func TestRepository_ListByGenre(t *testing.T) {
	db, repo := setupTestDB(t)
	ctx := context.Background()

	fantasy := createGenre(t, db, "Fantasy")
	poetry := createGenre(t, db, "Poetry")

	require.NoError(t, repo.Create(ctx, &entities.Book{Title: "Earthsea", Genres: []entities.Genre{{ID: fantasy.ID}}}))
	require.NoError(t, repo.Create(ctx, &entities.Book{Title: "Odes", Genres: []entities.Genre{{ID: poetry.ID}}}))

	books, err := repo.ListByGenre(ctx, fantasy.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Earthsea", books[0].Title)

	books, err = repo.ListByGenre(ctx, "none")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestRepository_ListByAuthorAndTitles(t *testing.T) {
	db, repo := setupTestDB(t)
	ctx := context.Background()
	author := createAuthor(t, db)

	require.NoError(t, repo.Create(ctx, &entities.Book{Title: "B", AuthorID: author.ID, Summary: "s"}))
	require.NoError(t, repo.Create(ctx, &entities.Book{Title: "A", Summary: "s"}))

	books, err := repo.ListByAuthor(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "B", books[0].Title)

	titles, err := repo.ListTitles(ctx)
	require.NoError(t, err)
	require.Len(t, titles, 2)
	assert.Equal(t, "A", titles[0].Title)
	assert.Empty(t, titles[0].Summary)
}

func TestRepository_ReplaceGenres(t *testing.T) {
	db, repo := setupTestDB(t)
	ctx := context.Background()

	fantasy := createGenre(t, db, "Fantasy")
	poetry := createGenre(t, db, "Poetry")

	book := &entities.Book{Title: "Mixed", Genres: []entities.Genre{{ID: fantasy.ID}}}
	require.NoError(t, repo.Create(ctx, book))

	replacement := &entities.Book{ID: book.ID, Title: "Mixed Verse", Genres: []entities.Genre{{ID: poetry.ID}}}
	require.NoError(t, repo.Replace(ctx, replacement))

	found, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mixed Verse", found.Title)
	require.Len(t, found.Genres, 1)
	assert.Equal(t, poetry.ID, found.Genres[0].ID)

	require.NoError(t, repo.Replace(ctx, &entities.Book{ID: book.ID, Title: "Bare"}))
	found, err = repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Genres)

	assert.ErrorIs(t, repo.Replace(ctx, &entities.Book{ID: "missing"}), entities.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	db, repo := setupTestDB(t)
	ctx := context.Background()
	fantasy := createGenre(t, db, "Fantasy")

	book := &entities.Book{Title: "Gone", Genres: []entities.Genre{{ID: fantasy.ID}}}
	require.NoError(t, repo.Create(ctx, book))
	require.NoError(t, repo.Delete(ctx, book.ID))

	_, err := repo.GetByID(ctx, book.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	books, err := repo.ListByGenre(ctx, fantasy.ID)
	require.NoError(t, err)
	assert.Empty(t, books)
}
