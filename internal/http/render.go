package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"

	"github.com/mrlokans/library/internal/session"
)

// flash queues a message for the page the client is redirected to.
func flash(c *gin.Context, message string) {
	session.AddFlash(c, message)
}

// render executes a named template with the CSRF field and any pending flash.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["csrf_field"] = csrf.TemplateField(c.Request)
	if msg := session.CurrentFlash(c); msg != "" {
		data["flash"] = msg
	}
	c.HTML(status, name, data)
}

// postForm parses the request body and returns its form values.
func postForm(c *gin.Context) (url.Values, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return c.Request.PostForm, nil
}

func malformed(err error) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: "Malformed form submission", Err: err}
}
