package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/validation"
)

type GenreController struct {
	genres    GenreStore
	books     BookStore
	validator *validation.Validator
	auditor   Auditor
}

func NewGenreController(genres GenreStore, books BookStore, v *validation.Validator, auditor Auditor) *GenreController {
	if auditor == nil {
		auditor = noopAuditor{}
	}
	return &GenreController{genres: genres, books: books, validator: v, auditor: auditor}
}

func (gc *GenreController) List(c *gin.Context) {
	list, err := gc.genres.List(c.Request.Context())
	if err != nil {
		forward(c, err)
		return
	}
	render(c, http.StatusOK, "genre_list", gin.H{
		"title":      "Genre List",
		"genre_list": list,
	})
}

// loadWithBooks fetches a genre and the books filed under it concurrently.
func (gc *GenreController) loadWithBooks(c *gin.Context, id string) (*entities.Genre, []entities.Book, error) {
	var (
		genre *entities.Genre
		books []entities.Book
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		genre, err = gc.genres.GetByID(ctx, id)
		return notFound(err, "Genre")
	})
	g.Go(func() (err error) {
		books, err = gc.books.ListByGenre(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return genre, books, nil
}

func (gc *GenreController) Detail(c *gin.Context) {
	var (
		genre *entities.Genre
		books []entities.Book
	)
	id := c.Param("id")
	history, err := withHistory(c, gc.auditor, entities.KindGenre, id, func() (err error) {
		genre, books, err = gc.loadWithBooks(c, id)
		return err
	})
	if err != nil {
		forward(c, err)
		return
	}
	render(c, http.StatusOK, "genre_detail", gin.H{
		"title":       "Genre Detail",
		"genre":       genre,
		"genre_books": books,
		"history":     history,
	})
}

func (gc *GenreController) CreateGet(c *gin.Context) {
	render(c, http.StatusOK, "genre_form", gin.H{"title": "Create Genre"})
}

// CreatePost stores a new genre. Submitting a name that already exists
// redirects to the existing genre instead.
func (gc *GenreController) CreatePost(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		forward(c, malformed(err))
		return
	}
	result := gc.validator.Apply(validation.GenreCreatePolicy, form)
	genre := &entities.Genre{Name: result.Get("name")}

	if !result.Valid() {
		render(c, http.StatusOK, "genre_form", gin.H{
			"title":  "Create Genre",
			"genre":  genre,
			"errors": result.Errors,
		})
		return
	}

	ctx := c.Request.Context()
	existing, err := gc.genres.FindByName(ctx, genre.Name)
	if err != nil {
		forward(c, err)
		return
	}
	if existing != nil {
		c.Redirect(http.StatusFound, existing.URL())
		return
	}

	if err := gc.genres.Create(ctx, genre); err != nil {
		// Lost a race against a concurrent create of the same name.
		if errors.Is(err, entities.ErrDuplicate) {
			if winner, findErr := gc.genres.FindByName(ctx, genre.Name); findErr == nil && winner != nil {
				c.Redirect(http.StatusFound, winner.URL())
				return
			}
		}
		forward(c, err)
		return
	}

	gc.auditor.LogCreate(entities.KindGenre, genre.ID, genre.Name, c.ClientIP())
	flash(c, "Genre created")
	c.Redirect(http.StatusFound, genre.URL())
}

func (gc *GenreController) DeleteGet(c *gin.Context) {
	genre, books, err := gc.loadWithBooks(c, c.Param("id"))
	if err != nil {
		forward(c, err)
		return
	}
	render(c, http.StatusOK, "genre_delete", gin.H{
		"title":       "Delete Genre",
		"genre":       genre,
		"genre_books": books,
	})
}

// DeletePost removes the genre named by the genreid body field unless books
// still reference it, in which case the confirmation page is shown again.
func (gc *GenreController) DeletePost(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		forward(c, malformed(err))
		return
	}
	id := form.Get("genreid")

	genre, books, err := gc.loadWithBooks(c, id)
	switch {
	case errors.Is(err, entities.ErrNotFound):
		// Already gone.
		c.Redirect(http.StatusFound, entities.ListURL(entities.KindGenre))
		return
	case err != nil:
		forward(c, err)
		return
	}

	if len(books) > 0 {
		render(c, http.StatusOK, "genre_delete", gin.H{
			"title":       "Delete Genre",
			"genre":       genre,
			"genre_books": books,
		})
		return
	}

	if err := gc.genres.Delete(c.Request.Context(), id); err != nil {
		forward(c, err)
		return
	}

	gc.auditor.LogDelete(entities.KindGenre, genre.ID, genre.Name, c.ClientIP())
	flash(c, "Genre deleted")
	c.Redirect(http.StatusFound, entities.ListURL(entities.KindGenre))
}

func (gc *GenreController) UpdateGet(c *gin.Context) {
	genre, err := gc.genres.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		forward(c, notFound(err, "Genre"))
		return
	}
	render(c, http.StatusOK, "genre_form", gin.H{
		"title": "Update Genre",
		"genre": genre,
	})
}

// UpdatePost replaces the genre identified by the URL path. An id in the
// body is ignored.
func (gc *GenreController) UpdatePost(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		forward(c, malformed(err))
		return
	}
	result := gc.validator.Apply(validation.GenreUpdatePolicy, form)
	genre := &entities.Genre{ID: c.Param("id"), Name: result.Get("name")}

	if !result.Valid() {
		render(c, http.StatusOK, "genre_form", gin.H{
			"title":  "Update Genre",
			"genre":  genre,
			"errors": result.Errors,
		})
		return
	}

	if err := gc.genres.Replace(c.Request.Context(), genre); err != nil {
		forward(c, notFound(err, "Genre"))
		return
	}

	gc.auditor.LogUpdate(entities.KindGenre, genre.ID, genre.Name, c.ClientIP())
	flash(c, "Genre updated")
	c.Redirect(http.StatusFound, genre.URL())
}
