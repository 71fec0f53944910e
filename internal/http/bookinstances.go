package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/validation"
)

type BookInstanceController struct {
	instances BookInstanceStore
	books     BookStore
	validator *validation.Validator
	auditor   Auditor
}

func NewBookInstanceController(instances BookInstanceStore, books BookStore, v *validation.Validator, auditor Auditor) *BookInstanceController {
	if auditor == nil {
		auditor = noopAuditor{}
	}
	return &BookInstanceController{instances: instances, books: books, validator: v, auditor: auditor}
}

func (bc *BookInstanceController) List(c *gin.Context) {
	list, err := bc.instances.List(c.Request.Context())
	if err != nil {
		forward(c, err)
		return
	}
	render(c, http.StatusOK, "bookinstance_list", gin.H{
		"title":             "Copies of Books",
		"bookinstance_list": list,
	})
}

func (bc *BookInstanceController) Detail(c *gin.Context) {
	var instance *entities.BookInstance
	id := c.Param("id")
	history, err := withHistory(c, bc.auditor, entities.KindBookInstance, id, func() (err error) {
		instance, err = bc.instances.GetByID(c.Request.Context(), id)
		return notFound(err, "Book copy")
	})
	if err != nil {
		forward(c, err)
		return
	}
	render(c, http.StatusOK, "bookinstance_detail", gin.H{
		"title":        "Book:",
		"bookinstance": instance,
		"history":      history,
	})
}

// renderForm re-fetches the book choices and renders the copy form.
func (bc *BookInstanceController) renderForm(c *gin.Context, title string, instance *entities.BookInstance, errs []validation.FieldError) {
	books, err := bc.books.ListTitles(c.Request.Context())
	if err != nil {
		forward(c, err)
		return
	}
	bc.renderFormWith(c, title, instance, books, errs)
}

func (bc *BookInstanceController) renderFormWith(c *gin.Context, title string, instance *entities.BookInstance, books []entities.Book, errs []validation.FieldError) {
	selected := ""
	if instance != nil {
		selected = instance.BookID
	}
	render(c, http.StatusOK, "bookinstance_form", gin.H{
		"title":         title,
		"book_list":     books,
		"selected_book": selected,
		"bookinstance":  instance,
		"statuses":      entities.InstanceStatuses,
		"errors":        errs,
	})
}

// instanceFromForm builds a copy from sanitized values. An unparsable due date has
// already been reported by the policy and is left empty.
func instanceFromForm(id string, result validation.Result) *entities.BookInstance {
	instance := &entities.BookInstance{
		ID:      id,
		BookID:  result.Get("book"),
		Imprint: result.Get("imprint"),
		Status:  entities.InstanceStatus(result.Get("status")),
	}
	if due, err := validation.ParseISO8601(result.Get("due_back")); err == nil {
		instance.DueBack = due
	}
	return instance
}

func (bc *BookInstanceController) CreateGet(c *gin.Context) {
	bc.renderForm(c, "Create Book Copy", nil, nil)
}

func (bc *BookInstanceController) CreatePost(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		forward(c, malformed(err))
		return
	}
	result := bc.validator.Apply(validation.BookInstanceCreatePolicy, form)
	instance := instanceFromForm("", result)

	if !result.Valid() {
		bc.renderForm(c, "Create Book Copy", instance, result.Errors)
		return
	}

	if err := bc.instances.Create(c.Request.Context(), instance); err != nil {
		forward(c, err)
		return
	}

	bc.auditor.LogCreate(entities.KindBookInstance, instance.ID, instance.Imprint, c.ClientIP())
	flash(c, "Book copy created")
	c.Redirect(http.StatusFound, instance.URL())
}

func (bc *BookInstanceController) DeleteGet(c *gin.Context) {
	instance, err := bc.instances.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		forward(c, notFound(err, "Book copy"))
		return
	}
	render(c, http.StatusOK, "bookinstance_delete", gin.H{
		"title":         "Delete Book Copy",
		"book_instance": instance,
	})
}

// DeletePost removes the copy named by the bookinstanceid body field.
// Copies have no dependents.
func (bc *BookInstanceController) DeletePost(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		forward(c, malformed(err))
		return
	}
	id := form.Get("bookinstanceid")
	ctx := c.Request.Context()

	instance, err := bc.instances.GetByID(ctx, id)
	switch {
	case errors.Is(err, entities.ErrNotFound):
		c.Redirect(http.StatusFound, entities.ListURL(entities.KindBookInstance))
		return
	case err != nil:
		forward(c, err)
		return
	}

	if err := bc.instances.Delete(ctx, id); err != nil {
		forward(c, err)
		return
	}

	bc.auditor.LogDelete(entities.KindBookInstance, instance.ID, instance.Imprint, c.ClientIP())
	flash(c, "Book copy deleted")
	c.Redirect(http.StatusFound, entities.ListURL(entities.KindBookInstance))
}

func (bc *BookInstanceController) UpdateGet(c *gin.Context) {
	var (
		instance *entities.BookInstance
		books    []entities.Book
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		instance, err = bc.instances.GetByID(ctx, c.Param("id"))
		return notFound(err, "Book copy")
	})
	g.Go(func() (err error) {
		books, err = bc.books.ListTitles(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		forward(c, err)
		return
	}
	bc.renderFormWith(c, "Update Book Copy", instance, books, nil)
}

// UpdatePost fully replaces the copy identified by the URL path: fields
// left out of the submission are cleared, not merged.
func (bc *BookInstanceController) UpdatePost(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		forward(c, malformed(err))
		return
	}
	result := bc.validator.Apply(validation.BookInstanceUpdatePolicy, form)
	instance := instanceFromForm(c.Param("id"), result)

	if !result.Valid() {
		bc.renderForm(c, "Update Book Copy", instance, result.Errors)
		return
	}

	if err := bc.instances.Replace(c.Request.Context(), instance); err != nil {
		forward(c, notFound(err, "Book copy"))
		return
	}

	bc.auditor.LogUpdate(entities.KindBookInstance, instance.ID, instance.Imprint, c.ClientIP())
	flash(c, "Book copy updated")
	c.Redirect(http.StatusFound, instance.URL())
}
