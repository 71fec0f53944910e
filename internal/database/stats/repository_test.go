package stats

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

func TestRepository_Counts(t *testing.T) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "stats.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	defer db.Close()

	book := entities.Book{Title: "Dune"}
	require.NoError(t, db.DB.Create(&book).Error)
	require.NoError(t, db.DB.Create(&entities.Genre{Name: "Science Fiction"}).Error)
	require.NoError(t, db.DB.Create(&entities.Author{FirstName: "Frank", FamilyName: "Herbert"}).Error)
	for _, status := range []entities.InstanceStatus{entities.StatusAvailable, entities.StatusAvailable, entities.StatusLoaned} {
		require.NoError(t, db.DB.Omit("Book").Create(&entities.BookInstance{BookID: book.ID, Imprint: "Ace", Status: status}).Error)
	}

	repo := NewRepository(db.DB)
	ctx := context.Background()

	n, err := repo.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.CountBookInstances(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.CountBookInstancesByStatus(ctx, entities.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.CountGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
