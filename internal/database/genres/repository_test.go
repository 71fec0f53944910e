package genres

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "genres.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	genre := &entities.Genre{Name: "Fantasy"}
	require.NoError(t, repo.Create(ctx, genre))
	assert.NotEmpty(t, genre.ID)

	found, err := repo.GetByID(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", found.Name)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_List_SortedByName(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"Science Fiction", "Fantasy", "Poetry"} {
		require.NoError(t, repo.Create(ctx, &entities.Genre{Name: name}))
	}

	genres, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, "Fantasy", genres[0].Name)
	assert.Equal(t, "Poetry", genres[1].Name)
	assert.Equal(t, "Science Fiction", genres[2].Name)
}

func TestRepository_FindByName(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	missing, err := repo.FindByName(ctx, "Horror")
	require.NoError(t, err)
	assert.Nil(t, missing)

	genre := &entities.Genre{Name: "Horror"}
	require.NoError(t, repo.Create(ctx, genre))

	found, err := repo.FindByName(ctx, "Horror")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, genre.ID, found.ID)
}

func TestRepository_Create_DuplicateName(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.Genre{Name: "Horror"}))
	err := repo.Create(ctx, &entities.Genre{Name: "Horror"})
	assert.ErrorIs(t, err, entities.ErrDuplicate)
}

func TestRepository_Replace(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	genre := &entities.Genre{Name: "Romance"}
	require.NoError(t, repo.Create(ctx, genre))

	require.NoError(t, repo.Replace(ctx, &entities.Genre{ID: genre.ID, Name: "Romantic Fiction"}))

	found, err := repo.GetByID(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Romantic Fiction", found.Name)
	assert.WithinDuration(t, genre.CreatedAt, found.CreatedAt, 0)
}

func TestRepository_Replace_Missing(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.Replace(context.Background(), &entities.Genre{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	genre := &entities.Genre{Name: "Western"}
	require.NoError(t, repo.Create(ctx, genre))
	require.NoError(t, repo.Delete(ctx, genre.ID))

	_, err := repo.GetByID(ctx, genre.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	assert.NoError(t, repo.Delete(ctx, genre.ID))
}
