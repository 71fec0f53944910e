package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/library/internal/entities"
)

// CatalogController serves the catalog home page.
type CatalogController struct {
	counter CatalogCounter
	trail   AuditTrail
}

func NewCatalogController(counter CatalogCounter, trail AuditTrail) *CatalogController {
	if trail == nil {
		trail = noopAuditor{}
	}
	return &CatalogController{counter: counter, trail: trail}
}

// Index renders the record counts and the latest changes, fetched concurrently.
func (cc *CatalogController) Index(c *gin.Context) {
	var books, instances, available, authors, genres int64
	var recent []entities.AuditEvent

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		books, err = cc.counter.CountBooks(ctx)
		return err
	})
	g.Go(func() (err error) {
		instances, err = cc.counter.CountBookInstances(ctx)
		return err
	})
	g.Go(func() (err error) {
		available, err = cc.counter.CountBookInstancesByStatus(ctx, entities.StatusAvailable)
		return err
	})
	g.Go(func() (err error) {
		authors, err = cc.counter.CountAuthors(ctx)
		return err
	})
	g.Go(func() (err error) {
		genres, err = cc.counter.CountGenres(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		if recent, _, err = cc.trail.GetEvents(ctx, recentChangesLimit, 0); err != nil {
			log.Printf("Failed to load recent changes: %v", err)
			recent = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		forward(c, err)
		return
	}

	render(c, http.StatusOK, "index", gin.H{
		"title":                         "Local Library Home",
		"book_count":                    books,
		"book_instance_count":           instances,
		"book_instance_available_count": available,
		"author_count":                  authors,
		"genre_count":                   genres,
		"recent_changes":                recent,
	})
}
