package http

import (
	"context"

	"github.com/mrlokans/library/internal/entities"
)

// This file consolidates the store interfaces used by the catalog controllers.
// Each interface is satisfied by the matching repository in internal/database
// (see internal/interfaces/checks.go).

// GenreStore is the genre persistence used by GenreController.
type GenreStore interface {
	List(ctx context.Context) ([]entities.Genre, error)
	GetByID(ctx context.Context, id string) (*entities.Genre, error)
	FindByName(ctx context.Context, name string) (*entities.Genre, error)
	Create(ctx context.Context, genre *entities.Genre) error
	Replace(ctx context.Context, genre *entities.Genre) error
	Delete(ctx context.Context, id string) error
}

// BookStore is the book persistence shared by several controllers.
type BookStore interface {
	List(ctx context.Context) ([]entities.Book, error)
	ListTitles(ctx context.Context) ([]entities.Book, error)
	GetByID(ctx context.Context, id string) (*entities.Book, error)
	ListByGenre(ctx context.Context, genreID string) ([]entities.Book, error)
	ListByAuthor(ctx context.Context, authorID string) ([]entities.Book, error)
	Create(ctx context.Context, book *entities.Book) error
	Replace(ctx context.Context, book *entities.Book) error
	Delete(ctx context.Context, id string) error
}

// AuthorStore is the author persistence used by AuthorController and the book form.
type AuthorStore interface {
	List(ctx context.Context) ([]entities.Author, error)
	GetByID(ctx context.Context, id string) (*entities.Author, error)
	Create(ctx context.Context, author *entities.Author) error
	Replace(ctx context.Context, author *entities.Author) error
	Delete(ctx context.Context, id string) error
}

// BookInstanceStore is the copy persistence used by BookInstanceController.
type BookInstanceStore interface {
	List(ctx context.Context) ([]entities.BookInstance, error)
	GetByID(ctx context.Context, id string) (*entities.BookInstance, error)
	ListByBook(ctx context.Context, bookID string) ([]entities.BookInstance, error)
	Create(ctx context.Context, instance *entities.BookInstance) error
	Replace(ctx context.Context, instance *entities.BookInstance) error
	Delete(ctx context.Context, id string) error
}

// CatalogCounter provides the record counts of the index page.
type CatalogCounter interface {
	CountBooks(ctx context.Context) (int64, error)
	CountBookInstances(ctx context.Context) (int64, error)
	CountBookInstancesByStatus(ctx context.Context, status entities.InstanceStatus) (int64, error)
	CountAuthors(ctx context.Context) (int64, error)
	CountGenres(ctx context.Context) (int64, error)
}

// AuditTrail reads back recorded mutations for the detail and index pages.
type AuditTrail interface {
	History(ctx context.Context, kind entities.Kind, id string) ([]entities.AuditEvent, error)
	GetEvents(ctx context.Context, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// Auditor records successful catalog mutations and serves them back.
type Auditor interface {
	LogCreate(kind entities.Kind, id, name, ipAddr string)
	LogUpdate(kind entities.Kind, id, name, ipAddr string)
	LogDelete(kind entities.Kind, id, name, ipAddr string)
	AuditTrail
}

type noopAuditor struct{}

func (noopAuditor) LogCreate(entities.Kind, string, string, string) {}
func (noopAuditor) LogUpdate(entities.Kind, string, string, string) {}
func (noopAuditor) LogDelete(entities.Kind, string, string, string) {}

func (noopAuditor) History(context.Context, entities.Kind, string) ([]entities.AuditEvent, error) {
	return nil, nil
}

func (noopAuditor) GetEvents(context.Context, int, int) ([]entities.AuditEvent, int64, error) {
	return nil, 0, nil
}

