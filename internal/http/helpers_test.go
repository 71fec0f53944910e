package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/bookinstances"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/genres"
	"github.com/mrlokans/library/internal/database/stats"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/views"
)

type auditCall struct {
	action string
	kind   entities.Kind
	id     string
	name   string
}

type fakeAuditor struct {
	mu    sync.Mutex
	calls []auditCall
	// trailErr fails History and GetEvents.
	trailErr error
}

func (f *fakeAuditor) record(action string, kind entities.Kind, id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, auditCall{action: action, kind: kind, id: id, name: name})
}

func (f *fakeAuditor) LogCreate(kind entities.Kind, id, name, _ string) { f.record("create", kind, id, name) }
func (f *fakeAuditor) LogUpdate(kind entities.Kind, id, name, _ string) { f.record("update", kind, id, name) }
func (f *fakeAuditor) LogDelete(kind entities.Kind, id, name, _ string) { f.record("delete", kind, id, name) }

// events replays the recorded calls newest first.
func (f *fakeAuditor) events(match func(auditCall) bool) []entities.AuditEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []entities.AuditEvent
	for i := len(f.calls) - 1; i >= 0; i-- {
		call := f.calls[i]
		if !match(call) {
			continue
		}
		events = append(events, entities.AuditEvent{
			EventType:   entities.AuditEventType(call.action),
			Description: call.action + " " + string(call.kind) + ": " + call.name,
			EntityType:  call.kind,
			EntityID:    call.id,
		})
	}
	return events
}

func (f *fakeAuditor) History(_ context.Context, kind entities.Kind, id string) ([]entities.AuditEvent, error) {
	if f.trailErr != nil {
		return nil, f.trailErr
	}
	return f.events(func(call auditCall) bool { return call.kind == kind && call.id == id }), nil
}

func (f *fakeAuditor) GetEvents(_ context.Context, limit, offset int) ([]entities.AuditEvent, int64, error) {
	if f.trailErr != nil {
		return nil, 0, f.trailErr
	}
	all := f.events(func(auditCall) bool { return true })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

type catalogEnv struct {
	router    *gin.Engine
	db        *database.Database
	genres    *genres.Repository
	books     *books.Repository
	authors   *authors.Repository
	instances *bookinstances.Repository
	auditor   *fakeAuditor
}

func newTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "catalog.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// setupCatalog builds the full router over a fresh database. Options can
// swap stores or add sessions before the router is created.
func setupCatalog(t *testing.T, opts ...func(*RouterConfig)) *catalogEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	env := &catalogEnv{
		db:        db,
		genres:    genres.NewRepository(db.DB),
		books:     books.NewRepository(db.DB),
		authors:   authors.NewRepository(db.DB),
		instances: bookinstances.NewRepository(db.DB),
		auditor:   &fakeAuditor{},
	}

	cfg := RouterConfig{
		Genres:        env.genres,
		Books:         env.books,
		Authors:       env.authors,
		BookInstances: env.instances,
		Stats:         stats.NewRepository(db.DB),
		Database:      db,
		Auditor:       env.auditor,
		Version:       "test",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	tmpl, err := views.Load("")
	require.NoError(t, err)
	env.router = newRouter(cfg, tmpl)
	return env
}

func (e *catalogEnv) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	e.router.ServeHTTP(w, req)
	return w
}

func (e *catalogEnv) post(path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	e.router.ServeHTTP(w, req)
	return w
}

// idFromLocation returns the last path segment of a redirect target.
func idFromLocation(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	require.NotEmpty(t, loc)
	return loc[strings.LastIndex(loc, "/")+1:]
}

func (e *catalogEnv) mustGenre(t *testing.T, name string) *entities.Genre {
	t.Helper()
	g := &entities.Genre{Name: name}
	require.NoError(t, e.genres.Create(context.Background(), g))
	return g
}

func (e *catalogEnv) mustAuthor(t *testing.T, first, family string) *entities.Author {
	t.Helper()
	a := &entities.Author{FirstName: first, FamilyName: family}
	require.NoError(t, e.authors.Create(context.Background(), a))
	return a
}

func (e *catalogEnv) mustBook(t *testing.T, title string, author *entities.Author, genres ...entities.Genre) *entities.Book {
	t.Helper()
	b := &entities.Book{Title: title, AuthorID: author.ID, Summary: "Summary of " + title, ISBN: "9780000000000", Genres: genres}
	require.NoError(t, e.books.Create(context.Background(), b))
	return b
}

func (e *catalogEnv) mustInstance(t *testing.T, book *entities.Book, imprint string, status entities.InstanceStatus) *entities.BookInstance {
	t.Helper()
	bi := &entities.BookInstance{BookID: book.ID, Imprint: imprint, Status: status}
	require.NoError(t, e.instances.Create(context.Background(), bi))
	return bi
}
