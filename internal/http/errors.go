package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/entities"
)

// HTTPError carries the status a failed request should be answered with.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// notFound rewrites a store miss into a 404 with a resource-specific message.
// Other errors pass through unchanged.
func notFound(err error, resource string) error {
	if errors.Is(err, entities.ErrNotFound) {
		return &HTTPError{Status: http.StatusNotFound, Message: resource + " not found", Err: err}
	}
	return err
}

// forward hands err to the error boundary and stops the handler chain.
func forward(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorBoundary renders errors forwarded by handlers. Not-found maps to 404,
// store constraint violations to 409/422, everything else is logged and
// answered with 500.
func ErrorBoundary() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		message := "Internal Server Error"

		var httpErr *HTTPError
		switch {
		case errors.As(err, &httpErr):
			status = httpErr.Status
			message = httpErr.Message
		case errors.Is(err, entities.ErrNotFound):
			status = http.StatusNotFound
			message = "Not found"
		case errors.Is(err, entities.ErrDuplicate):
			status = http.StatusConflict
			message = "A record with the same values already exists"
		case errors.Is(err, entities.ErrInvalidStatus):
			status = http.StatusUnprocessableEntity
			message = "Invalid book copy status"
		}

		if status >= http.StatusInternalServerError {
			log.Printf("Internal error (%s %s): %v", c.Request.Method, c.Request.URL.Path, err)
		}

		render(c, status, "error", gin.H{
			"title":   "Error",
			"message": message,
			"status":  status,
		})
	}
}
