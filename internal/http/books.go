package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/validation"
)

type BookController struct {
	books     BookStore
	authors   AuthorStore
	genres    GenreStore
	instances BookInstanceStore
	validator *validation.Validator
	auditor   Auditor
}

func NewBookController(books BookStore, authors AuthorStore, genres GenreStore, instances BookInstanceStore, v *validation.Validator, auditor Auditor) *BookController {
	if auditor == nil {
		auditor = noopAuditor{}
	}
	return &BookController{
		books:     books,
		authors:   authors,
		genres:    genres,
		instances: instances,
		validator: v,
		auditor:   auditor,
	}
}

func (bc *BookController) List(c *gin.Context) {
	list, err := bc.books.List(c.Request.Context())
	if err != nil {
		forward(c, err)
		return
	}
	render(c, http.StatusOK, "book_list", gin.H{
		"title":     "Book List",
		"book_list": list,
	})
}

// loadWithInstances fetches a book and its copies concurrently.
func (bc *BookController) loadWithInstances(c *gin.Context, id string) (*entities.Book, []entities.BookInstance, error) {
	var (
		book      *entities.Book
		instances []entities.BookInstance
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		book, err = bc.books.GetByID(ctx, id)
		return notFound(err, "Book")
	})
	g.Go(func() (err error) {
		instances, err = bc.instances.ListByBook(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return book, instances, nil
}

func (bc *BookController) Detail(c *gin.Context) {
	var (
		book      *entities.Book
		instances []entities.BookInstance
	)
	id := c.Param("id")
	history, err := withHistory(c, bc.auditor, entities.KindBook, id, func() (err error) {
		book, instances, err = bc.loadWithInstances(c, id)
		return err
	})
	if err != nil {
		forward(c, err)
		return
	}
	render(c, http.StatusOK, "book_detail", gin.H{
		"title":          book.Title,
		"book":           book,
		"book_instances": instances,
		"history":        history,
	})
}

// renderForm fetches the author and genre choices concurrently and renders
// the book form.
func (bc *BookController) renderForm(c *gin.Context, title string, book *entities.Book, errs []validation.FieldError) {
	var (
		authors []entities.Author
		genres  []entities.Genre
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		authors, err = bc.authors.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		genres, err = bc.genres.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		forward(c, err)
		return
	}
	render(c, http.StatusOK, "book_form", gin.H{
		"title":   title,
		"authors": authors,
		"genres":  genres,
		"book":    book,
		"errors":  errs,
	})
}

func bookFromForm(id string, result validation.Result) *entities.Book {
	return &entities.Book{
		ID:       id,
		Title:    result.Get("title"),
		AuthorID: result.Get("author"),
		Summary:  result.Get("summary"),
		ISBN:     result.Get("isbn"),
		Genres: lo.FilterMap(result.All("genre"), func(genreID string, _ int) (entities.Genre, bool) {
			return entities.Genre{ID: genreID}, genreID != ""
		}),
	}
}

func (bc *BookController) CreateGet(c *gin.Context) {
	bc.renderForm(c, "Create Book", nil, nil)
}

func (bc *BookController) CreatePost(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		forward(c, malformed(err))
		return
	}
	result := bc.validator.Apply(validation.BookPolicy, form)
	book := bookFromForm("", result)

	if !result.Valid() {
		bc.renderForm(c, "Create Book", book, result.Errors)
		return
	}

	if err := bc.books.Create(c.Request.Context(), book); err != nil {
		forward(c, err)
		return
	}

	bc.auditor.LogCreate(entities.KindBook, book.ID, book.Title, c.ClientIP())
	flash(c, "Book created")
	c.Redirect(http.StatusFound, book.URL())
}

func (bc *BookController) DeleteGet(c *gin.Context) {
	book, instances, err := bc.loadWithInstances(c, c.Param("id"))
	if err != nil {
		forward(c, err)
		return
	}
	render(c, http.StatusOK, "book_delete", gin.H{
		"title":          "Delete Book",
		"book":           book,
		"book_instances": instances,
	})
}

// DeletePost removes the book named by the bookid body field unless copies
// of it still exist.
func (bc *BookController) DeletePost(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		forward(c, malformed(err))
		return
	}
	id := form.Get("bookid")

	book, instances, err := bc.loadWithInstances(c, id)
	switch {
	case errors.Is(err, entities.ErrNotFound):
		c.Redirect(http.StatusFound, entities.ListURL(entities.KindBook))
		return
	case err != nil:
		forward(c, err)
		return
	}

	if len(instances) > 0 {
		render(c, http.StatusOK, "book_delete", gin.H{
			"title":          "Delete Book",
			"book":           book,
			"book_instances": instances,
		})
		return
	}

	if err := bc.books.Delete(c.Request.Context(), id); err != nil {
		forward(c, err)
		return
	}

	bc.auditor.LogDelete(entities.KindBook, book.ID, book.Title, c.ClientIP())
	flash(c, "Book deleted")
	c.Redirect(http.StatusFound, entities.ListURL(entities.KindBook))
}

func (bc *BookController) UpdateGet(c *gin.Context) {
	book, err := bc.books.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		forward(c, notFound(err, "Book"))
		return
	}
	bc.renderForm(c, "Update Book", book, nil)
}

// UpdatePost replaces the book identified by the URL path, including its
// genre set.
func (bc *BookController) UpdatePost(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		forward(c, malformed(err))
		return
	}
	result := bc.validator.Apply(validation.BookPolicy, form)
	book := bookFromForm(c.Param("id"), result)

	if !result.Valid() {
		bc.renderForm(c, "Update Book", book, result.Errors)
		return
	}

	if err := bc.books.Replace(c.Request.Context(), book); err != nil {
		forward(c, notFound(err, "Book"))
		return
	}

	bc.auditor.LogUpdate(entities.KindBook, book.ID, book.Title, c.ClientIP())
	flash(c, "Book updated")
	c.Redirect(http.StatusFound, book.URL())
}
