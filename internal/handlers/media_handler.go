package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/egliseduberger/website/internal/auth/middleware"
	"github.com/egliseduberger/website/internal/models"
	"github.com/egliseduberger/website/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// sermonCategories are offered as filters on the media page
var sermonCategories = []string{"Cultes", models.DefaultSermonCategory, "Événements"}

// SermonService is the interface that wraps methods for sermon business logic
type SermonService interface {
	// Method PlanListing builds one page of the sermon feed: the newest sermon featured, the page of the rest and the page count.
	//
	// "page" parameter is 1-based; values below 1 are treated as 1.
	// "category" parameter filters every query; an empty value disables the filter.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	PlanListing(ctx context.Context, page int, category string) (*models.SermonListing, error)
	// Method GetByID retrieves a sermon by its ID.
	//
	// If the sermon does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Sermon, error)
	// Method Create stores a sermon, an empty category being replaced by the default one.
	//
	// If some error occurs during data insert, the error will be returned together with "0" value.
	Create(ctx context.Context, input *models.SermonInput) (int, error)
	// Method Update overwrites a sermon; please reference Create method for the category default.
	Update(ctx context.Context, id int, input *models.SermonInput) error
	// Method Delete removes a sermon.
	Delete(ctx context.Context, id int) error
}

// MediaHandler handles the sermon listing and sermon administration
type MediaHandler struct {
	BaseHandler
	service SermonService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(svc SermonService, renderer views.Renderer, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		service:     svc,
	}
}

// RegisterRoutes registers all media handler routes
func (h *MediaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/media", h.List)
	r.Route("/sermons", func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.Get("/new", h.New)
		r.Post("/create", h.Create)
		r.Get("/edit/{id}", h.Edit)
		r.Post("/update/{id}", h.Update)
		r.Post("/delete/{id}", h.Delete)
	})
}

// List handles GET /media?page=&category=
// A failed lookup renders an empty listing
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	category := r.URL.Query().Get("category")

	listing, err := h.service.PlanListing(r.Context(), page, category)
	if err != nil {
		h.logger.Error("failed to plan sermon listing", zap.Int("page", page), zap.String("category", category), zap.Error(err))
		listing = &models.SermonListing{Items: []models.Sermon{}, TotalPages: 1}
		page = 1
		category = ""
	}

	h.render(w, r, http.StatusOK, "media", "media", views.Data{
		"featuredSermon":        listing.Featured,
		"recentSermons":         listing.Items,
		"currentPaginationPage": page,
		"totalPages":            listing.TotalPages,
		"currentCategory":       category,
		"categories":            sermonCategories,
	})
}

// New handles GET /sermons/new
func (h *MediaHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "sermon-form", "media", views.Data{"sermon": &models.Sermon{}})
}

// Create handles POST /sermons/create
func (h *MediaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.SermonInput
	if err := h.decode(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}

	if _, err := h.service.Create(r.Context(), &input); err != nil {
		h.serverError(w, err, "Erreur lors de la création du sermon")
		return
	}
	h.redirect(w, r, "/media")
}

// Edit handles GET /sermons/edit/{id}
func (h *MediaHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Sermon non trouvé")
		return
	}

	sermon, err := h.service.GetByID(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "Sermon non trouvé")
		return
	}
	if err != nil {
		h.serverError(w, err, "Erreur lors du chargement")
		return
	}

	h.render(w, r, http.StatusOK, "sermon-form", "media", views.Data{"sermon": sermon})
}

// Update handles POST /sermons/update/{id}
func (h *MediaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Sermon non trouvé")
		return
	}

	var input models.SermonInput
	if err := h.decode(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}

	if err := h.service.Update(r.Context(), id, &input); err != nil {
		h.serverError(w, err, "Erreur lors de la mise à jour")
		return
	}
	h.redirect(w, r, "/media")
}

// Delete handles POST /sermons/delete/{id}
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Sermon non trouvé")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.serverError(w, err, "Erreur lors de la suppression")
		return
	}
	h.redirect(w, r, "/media")
}
