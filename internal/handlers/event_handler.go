package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/egliseduberger/website/internal/auth/middleware"
	"github.com/egliseduberger/website/internal/models"
	"github.com/egliseduberger/website/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	eventsViewList  = "list"
	eventsViewMonth = "month"
)

// EventRepository is the interface that wraps methods for Events table data access
type EventRepository interface {
	ContentRepository[models.Event, models.EventInput]
	// Method List retrieves every event, soonest first.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context) ([]models.Event, error)
}

// EventHandler handles the events pages and event administration
type EventHandler struct {
	BaseHandler
	events EventRepository
	form   *contentForm[models.Event, models.EventInput]
}

// NewEventHandler creates a new event handler
func NewEventHandler(events EventRepository, renderer views.Renderer, logger *zap.Logger) *EventHandler {
	h := &EventHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		events:      events,
	}
	h.form = &contentForm[models.Event, models.EventInput]{
		BaseHandler:     &h.BaseHandler,
		repo:            events,
		view:            "event-form",
		currentPage:     "events",
		dataKey:         "event",
		redirectTo:      "/events",
		notFoundMessage: "Événement non trouvé",
		createMessage:   "Erreur lors de la création",
		loadMessage:     "Erreur lors du chargement",
	}
	return h
}

// RegisterRoutes registers all event handler routes
func (h *EventHandler) RegisterRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Detail)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)
			h.form.register(r, "/new")
		})
	})
}

// List handles GET /events?view=list|month
// A failed lookup renders an empty list view
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	if view != eventsViewMonth {
		view = eventsViewList
	}

	events, err := h.events.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		events = []models.Event{}
		view = eventsViewList
	}

	h.render(w, r, http.StatusOK, "events", "events", views.Data{
		"events":      events,
		"currentView": view,
	})
}

// Detail handles GET /events/{id}
func (h *EventHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.render(w, r, http.StatusNotFound, "404", "404", nil)
		return
	}

	event, err := h.events.GetByID(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.render(w, r, http.StatusNotFound, "404", "404", nil)
		return
	}
	if err != nil {
		h.logger.Error("failed to get event", zap.Int("id", id), zap.Error(err))
		h.render(w, r, http.StatusInternalServerError, "error", "error", nil)
		return
	}

	h.render(w, r, http.StatusOK, "event-detail", "events", views.Data{"event": event})
}
