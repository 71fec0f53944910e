package bookinstances

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "instances.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db.DB, NewRepository(db.DB)
}

func createBook(t *testing.T, db *gorm.DB, title string) entities.Book {
	t.Helper()
	book := entities.Book{Title: title}
	require.NoError(t, db.Create(&book).Error)
	return book
}

func TestRepository_CreateAndGet(t *testing.T) {
	db, repo := setupTestDB(t)
	ctx := context.Background()
	book := createBook(t, db, "Dune")

	instance := &entities.BookInstance{BookID: book.ID, Imprint: "Ace, 1990"}
	require.NoError(t, repo.Create(ctx, instance))
	assert.NotEmpty(t, instance.ID)
	assert.Equal(t, entities.StatusMaintenance, instance.Status)

	found, err := repo.GetByID(ctx, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", found.Book.Title)
	assert.Nil(t, found.DueBack)
}

func TestRepository_Create_InvalidStatus(t *testing.T) {
	db, repo := setupTestDB(t)
	book := createBook(t, db, "Dune")

	err := repo.Create(context.Background(), &entities.BookInstance{BookID: book.ID, Imprint: "x", Status: "Lost"})
	assert.ErrorIs(t, err, entities.ErrInvalidStatus)
}

func TestRepository_List(t *testing.T) {
	db, repo := setupTestDB(t)
	ctx := context.Background()
	dune := createBook(t, db, "Dune")
	emma := createBook(t, db, "Emma")

	require.NoError(t, repo.Create(ctx, &entities.BookInstance{BookID: dune.ID, Imprint: "first"}))
	require.NoError(t, repo.Create(ctx, &entities.BookInstance{BookID: emma.ID, Imprint: "second"}))

	instances, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, instances, 2)
	titles := []string{instances[0].Book.Title, instances[1].Book.Title}
	assert.ElementsMatch(t, []string{"Dune", "Emma"}, titles)

	copies, err := repo.ListByBook(ctx, dune.ID)
	require.NoError(t, err)
	require.Len(t, copies, 1)
	assert.Equal(t, "first", copies[0].Imprint)
}

func TestRepository_Replace_OverwritesAllFields(t *testing.T) {
	db, repo := setupTestDB(t)
	ctx := context.Background()
	dune := createBook(t, db, "Dune")
	emma := createBook(t, db, "Emma")

	due := time.Date(2030, time.May, 1, 0, 0, 0, 0, time.UTC)
	instance := &entities.BookInstance{BookID: dune.ID, Imprint: "old", Status: entities.StatusLoaned, DueBack: &due}
	require.NoError(t, repo.Create(ctx, instance))

	require.NoError(t, repo.Replace(ctx, &entities.BookInstance{
		ID:      instance.ID,
		BookID:  emma.ID,
		Imprint: "new",
		Status:  entities.StatusAvailable,
	}))

	found, err := repo.GetByID(ctx, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, emma.ID, found.BookID)
	assert.Equal(t, "new", found.Imprint)
	assert.Equal(t, entities.StatusAvailable, found.Status)
	assert.Nil(t, found.DueBack)
}

func TestRepository_Replace_Missing(t *testing.T) {
	_, repo := setupTestDB(t)

	err := repo.Replace(context.Background(), &entities.BookInstance{ID: "missing", Imprint: "x"})
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	db, repo := setupTestDB(t)
	ctx := context.Background()
	book := createBook(t, db, "Dune")

	instance := &entities.BookInstance{BookID: book.ID, Imprint: "x"}
	require.NoError(t, repo.Create(ctx, instance))
	require.NoError(t, repo.Delete(ctx, instance.ID))

	_, err := repo.GetByID(ctx, instance.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
