package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/validation"
	"github.com/mrlokans/library/internal/views"
)

// SessionMiddleware loads and saves visitor sessions and carries flash
// messages across redirects (see session.AddFlash).
type SessionMiddleware interface {
	Middleware() gin.HandlerFunc
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	tmpl, err := views.Load(cfg.TemplatesPath)
	if err != nil {
		return nil, err
	}
	return newRouter(cfg, tmpl), nil
}

func newRouter(cfg RouterConfig, tmpl *template.Template) *gin.Engine {
	if cfg.Validator == nil {
		cfg.Validator = validation.New()
	}

	metrics := NewMetrics()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())
	router.Use(SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.Middleware())
	}
	router.Use(ErrorBoundary())

	router.SetHTMLTemplate(tmpl)
	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	checks := map[string]HealthCheck{"database": nil}
	if cfg.Database != nil {
		checks["database"] = cfg.Database.Ping
	}
	for name, check := range cfg.HealthChecks {
		checks[name] = check
	}
	health := NewHealthController(checks, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", metrics.Handler())

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/catalog")
	})

	catalogController := NewCatalogController(cfg.Stats, cfg.Auditor)
	genreController := NewGenreController(cfg.Genres, cfg.Books, cfg.Validator, cfg.Auditor)
	instanceController := NewBookInstanceController(cfg.BookInstances, cfg.Books, cfg.Validator, cfg.Auditor)
	bookController := NewBookController(cfg.Books, cfg.Authors, cfg.Genres, cfg.BookInstances, cfg.Validator, cfg.Auditor)
	authorController := NewAuthorController(cfg.Authors, cfg.Books, cfg.Validator, cfg.Auditor)

	catalog := router.Group("/catalog")
	catalog.GET("", catalogController.Index)

	registerCRUD(catalog, entities.KindGenre, crudHandlers{
		list: genreController.List, detail: genreController.Detail,
		createGet: genreController.CreateGet, createPost: genreController.CreatePost,
		deleteGet: genreController.DeleteGet, deletePost: genreController.DeletePost,
		updateGet: genreController.UpdateGet, updatePost: genreController.UpdatePost,
	})
	registerCRUD(catalog, entities.KindBookInstance, crudHandlers{
		list: instanceController.List, detail: instanceController.Detail,
		createGet: instanceController.CreateGet, createPost: instanceController.CreatePost,
		deleteGet: instanceController.DeleteGet, deletePost: instanceController.DeletePost,
		updateGet: instanceController.UpdateGet, updatePost: instanceController.UpdatePost,
	})
	registerCRUD(catalog, entities.KindBook, crudHandlers{
		list: bookController.List, detail: bookController.Detail,
		createGet: bookController.CreateGet, createPost: bookController.CreatePost,
		deleteGet: bookController.DeleteGet, deletePost: bookController.DeletePost,
		updateGet: bookController.UpdateGet, updatePost: bookController.UpdatePost,
	})
	registerCRUD(catalog, entities.KindAuthor, crudHandlers{
		list: authorController.List, detail: authorController.Detail,
		createGet: authorController.CreateGet, createPost: authorController.CreatePost,
		deleteGet: authorController.DeleteGet, deletePost: authorController.DeletePost,
		updateGet: authorController.UpdateGet, updatePost: authorController.UpdatePost,
	})

	router.NoRoute(func(c *gin.Context) {
		forward(c, &HTTPError{Status: http.StatusNotFound, Message: "Page not found"})
	})

	return router
}

type crudHandlers struct {
	list, detail          gin.HandlerFunc
	createGet, createPost gin.HandlerFunc
	deleteGet, deletePost gin.HandlerFunc
	updateGet, updatePost gin.HandlerFunc
}

// registerCRUD mounts the eight routes of one entity kind. The create route is
// registered before :id so "create" is never taken for an identifier.
func registerCRUD(g *gin.RouterGroup, kind entities.Kind, h crudHandlers) {
	base := "/" + string(kind)
	g.GET(base+"/create", h.createGet)
	g.POST(base+"/create", h.createPost)
	g.GET(base+"/:id/delete", h.deleteGet)
	g.POST(base+"/:id/delete", h.deletePost)
	g.GET(base+"/:id/update", h.updateGet)
	g.POST(base+"/:id/update", h.updatePost)
	g.GET(base+"/:id", h.detail)
	g.GET(base+"s", h.list)
}
