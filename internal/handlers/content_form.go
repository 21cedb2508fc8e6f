package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/egliseduberger/website/internal/models"
	"github.com/egliseduberger/website/internal/views"
	"github.com/go-chi/chi/v5"
)

// ContentRepository is the interface that wraps the methods shared by every admin-editable content table
//
// "T" is the stored record and "I" the raw form input it is written from.
type ContentRepository[T any, I any] interface {
	// Method GetByID retrieves a record by its ID.
	//
	// If the record does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*T, error)
	// Method Create inserts a record and returns its ID.
	//
	// If some error occurs during data insert, the error will be returned together with "0" value.
	Create(ctx context.Context, input *I) (int, error)
	// Method Update overwrites a record. Updating a missing ID is not an error.
	Update(ctx context.Context, id int, input *I) error
	// Method Delete removes a record. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id int) error
}

// contentForm serves the admin form routes of one content table
type contentForm[T any, I any] struct {
	*BaseHandler
	repo ContentRepository[T, I]

	view        string // form view name
	currentPage string
	dataKey     string // key the record is exposed under in the form view
	redirectTo  string // listing page shown after a mutation

	notFoundMessage string
	createMessage   string
	loadMessage     string
}

// register mounts the form routes; "newPath" is the path of the blank form, relative to the router
func (f *contentForm[T, I]) register(r chi.Router, newPath string) {
	r.Get(newPath, f.New)
	r.Post("/create", f.Create)
	r.Get("/edit/{id}", f.Edit)
	r.Post("/update/{id}", f.Update)
	r.Post("/delete/{id}", f.Delete)
}

// New renders a blank form
func (f *contentForm[T, I]) New(w http.ResponseWriter, r *http.Request) {
	f.render(w, r, http.StatusOK, f.view, f.currentPage, views.Data{f.dataKey: new(T)})
}

// Create stores the submitted record
func (f *contentForm[T, I]) Create(w http.ResponseWriter, r *http.Request) {
	input := new(I)
	if err := f.decode(r, input); err != nil {
		f.respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}

	if _, err := f.repo.Create(r.Context(), input); err != nil {
		f.serverError(w, err, f.createMessage)
		return
	}
	f.redirect(w, r, f.redirectTo)
}

// Edit renders the form filled with a stored record
func (f *contentForm[T, I]) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		f.respondError(w, http.StatusNotFound, f.notFoundMessage)
		return
	}

	record, err := f.repo.GetByID(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		f.respondError(w, http.StatusNotFound, f.notFoundMessage)
		return
	}
	if err != nil {
		f.serverError(w, err, f.loadMessage)
		return
	}

	f.render(w, r, http.StatusOK, f.view, f.currentPage, views.Data{f.dataKey: record})
}

// Update overwrites a stored record
func (f *contentForm[T, I]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		f.respondError(w, http.StatusNotFound, f.notFoundMessage)
		return
	}

	input := new(I)
	if err := f.decode(r, input); err != nil {
		f.respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}

	if err := f.repo.Update(r.Context(), id, input); err != nil {
		f.serverError(w, err, "Erreur lors de la mise à jour")
		return
	}
	f.redirect(w, r, f.redirectTo)
}

// Delete removes a stored record
func (f *contentForm[T, I]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		f.respondError(w, http.StatusNotFound, f.notFoundMessage)
		return
	}

	if err := f.repo.Delete(r.Context(), id); err != nil {
		f.serverError(w, err, "Erreur lors de la suppression")
		return
	}
	f.redirect(w, r, f.redirectTo)
}
