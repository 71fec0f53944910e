// Package stats provides aggregate counts for the catalog home page.
package stats

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

// Repository runs count queries against catalog tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new stats repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	return r.count(ctx, entities.Book{}.TableName(), nil)
}

func (r *Repository) CountBookInstances(ctx context.Context) (int64, error) {
	return r.count(ctx, entities.BookInstance{}.TableName(), nil)
}

// CountBookInstancesByStatus counts copies with the given status.
func (r *Repository) CountBookInstancesByStatus(ctx context.Context, status entities.InstanceStatus) (int64, error) {
	return r.count(ctx, entities.BookInstance{}.TableName(), sq.Eq{"status": string(status)})
}

func (r *Repository) CountAuthors(ctx context.Context) (int64, error) {
	return r.count(ctx, entities.Author{}.TableName(), nil)
}

func (r *Repository) CountGenres(ctx context.Context) (int64, error) {
	return r.count(ctx, entities.Genre{}.TableName(), nil)
}

func (r *Repository) count(ctx context.Context, table string, where sq.Sqlizer) (int64, error) {
	query := sq.Select("COUNT(*)").From(table)
	if where != nil {
		query = query.Where(where)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query for %s: %w", table, err)
	}

	var n int64
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
