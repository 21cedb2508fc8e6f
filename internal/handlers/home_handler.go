package handlers

import (
	"context"
	"net/http"

	"github.com/egliseduberger/website/internal/models"
	"github.com/egliseduberger/website/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	homeEventsLimit     = 3
	homeMinistriesLimit = 3
)

// UpcomingEventsLister is the interface that wraps the lookup of coming events
type UpcomingEventsLister interface {
	// Method ListUpcoming retrieves events from today onwards, soonest first.
	//
	// "limit" parameter is the maximum number of events returned.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	ListUpcoming(ctx context.Context, limit int) ([]models.Event, error)
}

// MinistryPreviewLister is the interface that wraps the lookup of the first ministries
type MinistryPreviewLister interface {
	// Method ListLimited retrieves the first ministries.
	//
	// Please reference UpcomingEventsLister for more information about "limit" parameter and error values.
	ListLimited(ctx context.Context, limit int) ([]models.Ministry, error)
}

// LatestSermonGetter is the interface that wraps the lookup of the newest sermon
type LatestSermonGetter interface {
	// Method Latest retrieves the newest sermon of any category, "nil" when there is none.
	Latest(ctx context.Context) (*models.Sermon, error)
}

// HomeHandler handles the home page and the static pages
type HomeHandler struct {
	BaseHandler
	events     UpcomingEventsLister
	ministries MinistryPreviewLister
	sermons    LatestSermonGetter
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(events UpcomingEventsLister, ministries MinistryPreviewLister, sermons LatestSermonGetter, renderer views.Renderer, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		events:      events,
		ministries:  ministries,
		sermons:     sermons,
	}
}

// RegisterRoutes registers all home handler routes
func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/index.html", h.IndexRedirect)
	r.Get("/give", h.Give)
}

// Home handles GET /
// Any failed lookup renders the page with every section empty
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data, err := h.homeData(r.Context())
	if err != nil {
		h.logger.Error("failed to load home page", zap.Error(err))
		data = views.Data{
			"events":       []models.Event{},
			"ministries":   []models.Ministry{},
			"latestSermon": (*models.Sermon)(nil),
		}
	}
	h.render(w, r, http.StatusOK, "index", "home", data)
}

func (h *HomeHandler) homeData(ctx context.Context) (views.Data, error) {
	events, err := h.events.ListUpcoming(ctx, homeEventsLimit)
	if err != nil {
		return nil, err
	}
	ministries, err := h.ministries.ListLimited(ctx, homeMinistriesLimit)
	if err != nil {
		return nil, err
	}
	sermon, err := h.sermons.Latest(ctx)
	if err != nil {
		return nil, err
	}

	return views.Data{
		"events":       events,
		"ministries":   ministries,
		"latestSermon": sermon,
	}, nil
}

// IndexRedirect handles GET /index.html
func (h *HomeHandler) IndexRedirect(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, "/")
}

// Give handles GET /give
func (h *HomeHandler) Give(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "give", "give", nil)
}

// NotFound renders the 404 page for unknown routes
func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "404", "404", nil)
}
