package session

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
)

const (
	managerContextKey = "session.manager"
	flashContextKey   = "session.flash"
)

// Middleware loads the visitor's session, hands a pending flash message to
// the page being rendered and saves the session before the response headers
// go out. Flashes are only consumed by GET and HEAD requests, so a message
// queued before a redirect survives until the redirect target is shown.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if cookie, err := c.Request.Cookie(m.Cookie.Name); err == nil {
			token = cookie.Value
		}
		ctx, err := m.Load(c.Request.Context(), token)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Set(managerContextKey, m)

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			if msg := m.PopFlash(ctx); msg != "" {
				c.Set(flashContextKey, msg)
			}
		}

		w := &savingWriter{ResponseWriter: c.Writer}
		w.save = func() { m.save(c.Request.Context(), w.ResponseWriter) }
		c.Writer = w

		c.Next()
		w.once.Do(w.save)
	}
}

// save commits a changed session and sets (or clears) its cookie.
func (m *Manager) save(ctx context.Context, w http.ResponseWriter) {
	switch m.Status(ctx) {
	case scs.Modified:
		token, expiry, err := m.Commit(ctx)
		if err != nil {
			log.Printf("Failed to save session: %v", err)
			return
		}
		m.WriteSessionCookie(ctx, w, token, expiry)
	case scs.Destroyed:
		m.WriteSessionCookie(ctx, w, "", time.Time{})
	}
}

// savingWriter runs save exactly once, before anything reaches the client.
type savingWriter struct {
	gin.ResponseWriter
	once sync.Once
	save func()
}

func (w *savingWriter) WriteHeader(code int) {
	w.once.Do(w.save)
	w.ResponseWriter.WriteHeader(code)
}

func (w *savingWriter) WriteHeaderNow() {
	w.once.Do(w.save)
	w.ResponseWriter.WriteHeaderNow()
}

func (w *savingWriter) Write(b []byte) (int, error) {
	w.once.Do(w.save)
	return w.ResponseWriter.Write(b)
}

func (w *savingWriter) WriteString(s string) (int, error) {
	w.once.Do(w.save)
	return w.ResponseWriter.WriteString(s)
}

// AddFlash queues a message for the next page the visitor loads. It is a
// no-op when the session middleware is not installed.
func AddFlash(c *gin.Context, message string) {
	v, ok := c.Get(managerContextKey)
	if !ok {
		return
	}
	if m, ok := v.(*Manager); ok {
		m.Flash(c.Request.Context(), message)
	}
}

// CurrentFlash returns the message handed to the page being rendered.
func CurrentFlash(c *gin.Context) string {
	return c.GetString(flashContextKey)
}
