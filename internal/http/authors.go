package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/validation"
)

type AuthorController struct {
	authors   AuthorStore
	books     BookStore
	validator *validation.Validator
	auditor   Auditor
}

func NewAuthorController(authors AuthorStore, books BookStore, v *validation.Validator, auditor Auditor) *AuthorController {
	if auditor == nil {
		auditor = noopAuditor{}
	}
	return &AuthorController{authors: authors, books: books, validator: v, auditor: auditor}
}

func (ac *AuthorController) List(c *gin.Context) {
	list, err := ac.authors.List(c.Request.Context())
	if err != nil {
		forward(c, err)
		return
	}
	render(c, http.StatusOK, "author_list", gin.H{
		"title":       "Author List",
		"author_list": list,
	})
}

// loadWithBooks fetches an author and their books concurrently.
func (ac *AuthorController) loadWithBooks(c *gin.Context, id string) (*entities.Author, []entities.Book, error) {
	var (
		author *entities.Author
		books  []entities.Book
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		author, err = ac.authors.GetByID(ctx, id)
		return notFound(err, "Author")
	})
	g.Go(func() (err error) {
		books, err = ac.books.ListByAuthor(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return author, books, nil
}

func (ac *AuthorController) Detail(c *gin.Context) {
	var (
		author *entities.Author
		books  []entities.Book
	)
	id := c.Param("id")
	history, err := withHistory(c, ac.auditor, entities.KindAuthor, id, func() (err error) {
		author, books, err = ac.loadWithBooks(c, id)
		return err
	})
	if err != nil {
		forward(c, err)
		return
	}
	render(c, http.StatusOK, "author_detail", gin.H{
		"title":        "Author Detail",
		"author":       author,
		"author_books": books,
		"history":      history,
	})
}

func authorFromForm(id string, result validation.Result) *entities.Author {
	author := &entities.Author{
		ID:         id,
		FirstName:  result.Get("first_name"),
		FamilyName: result.Get("family_name"),
	}
	if born, err := validation.ParseISO8601(result.Get("date_of_birth")); err == nil {
		author.DateOfBirth = born
	}
	if died, err := validation.ParseISO8601(result.Get("date_of_death")); err == nil {
		author.DateOfDeath = died
	}
	return author
}

func (ac *AuthorController) CreateGet(c *gin.Context) {
	render(c, http.StatusOK, "author_form", gin.H{"title": "Create Author"})
}

func (ac *AuthorController) CreatePost(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		forward(c, malformed(err))
		return
	}
	result := ac.validator.Apply(validation.AuthorPolicy, form)
	author := authorFromForm("", result)

	if !result.Valid() {
		render(c, http.StatusOK, "author_form", gin.H{
			"title":  "Create Author",
			"author": author,
			"errors": result.Errors,
		})
		return
	}

	if err := ac.authors.Create(c.Request.Context(), author); err != nil {
		forward(c, err)
		return
	}

	ac.auditor.LogCreate(entities.KindAuthor, author.ID, author.Name(), c.ClientIP())
	flash(c, "Author created")
	c.Redirect(http.StatusFound, author.URL())
}

func (ac *AuthorController) DeleteGet(c *gin.Context) {
	author, books, err := ac.loadWithBooks(c, c.Param("id"))
	if err != nil {
		forward(c, err)
		return
	}
	render(c, http.StatusOK, "author_delete", gin.H{
		"title":        "Delete Author",
		"author":       author,
		"author_books": books,
	})
}

// DeletePost removes the author named by the authorid body field unless
// books still reference them.
func (ac *AuthorController) DeletePost(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		forward(c, malformed(err))
		return
	}
	id := form.Get("authorid")

	author, books, err := ac.loadWithBooks(c, id)
	switch {
	case errors.Is(err, entities.ErrNotFound):
		c.Redirect(http.StatusFound, entities.ListURL(entities.KindAuthor))
		return
	case err != nil:
		forward(c, err)
		return
	}

	if len(books) > 0 {
		render(c, http.StatusOK, "author_delete", gin.H{
			"title":        "Delete Author",
			"author":       author,
			"author_books": books,
		})
		return
	}

	if err := ac.authors.Delete(c.Request.Context(), id); err != nil {
		forward(c, err)
		return
	}

	ac.auditor.LogDelete(entities.KindAuthor, author.ID, author.Name(), c.ClientIP())
	flash(c, "Author deleted")
	c.Redirect(http.StatusFound, entities.ListURL(entities.KindAuthor))
}

func (ac *AuthorController) UpdateGet(c *gin.Context) {
	author, err := ac.authors.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		forward(c, notFound(err, "Author"))
		return
	}
	render(c, http.StatusOK, "author_form", gin.H{
		"title":  "Update Author",
		"author": author,
	})
}

func (ac *AuthorController) UpdatePost(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		forward(c, malformed(err))
		return
	}
	result := ac.validator.Apply(validation.AuthorPolicy, form)
	author := authorFromForm(c.Param("id"), result)

	if !result.Valid() {
		render(c, http.StatusOK, "author_form", gin.H{
			"title":  "Update Author",
			"author": author,
			"errors": result.Errors,
		})
		return
	}

	if err := ac.authors.Replace(c.Request.Context(), author); err != nil {
		forward(c, notFound(err, "Author"))
		return
	}

	ac.auditor.LogUpdate(entities.KindAuthor, author.ID, author.Name(), c.ClientIP())
	flash(c, "Author updated")
	c.Redirect(http.StatusFound, author.URL())
}
