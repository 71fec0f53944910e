package http

import (
	"log"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/library/internal/entities"
)

// recentChangesLimit is how many audit events the index page lists.
const recentChangesLimit = 10

// withHistory runs load while the audit trail of kind/id is fetched
// alongside it. A failing trail is logged and leaves the history empty;
// only load decides whether the page fails.
func withHistory(c *gin.Context, trail AuditTrail, kind entities.Kind, id string, load func() error) ([]entities.AuditEvent, error) {
	var events []entities.AuditEvent

	var g errgroup.Group
	g.Go(load)
	g.Go(func() error {
		var err error
		if events, err = trail.History(c.Request.Context(), kind, id); err != nil {
			log.Printf("Failed to load history of %s %s: %v", kind, id, err)
			events = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return events, nil
}
