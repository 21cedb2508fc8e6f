package handlers

import (
	"context"
	"net/http"

	"github.com/egliseduberger/website/internal/auth/middleware"
	"github.com/egliseduberger/website/internal/models"
	"github.com/egliseduberger/website/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MinistryRepository is the interface that wraps methods for Ministries table data access
type MinistryRepository interface {
	ContentRepository[models.Ministry, models.MinistryInput]
	// Method List retrieves every ministry by ID.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context) ([]models.Ministry, error)
}

// HouseGroupLister is the interface that wraps the lookup of house groups
type HouseGroupLister interface {
	// Method List retrieves every house group.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context) ([]models.HouseGroup, error)
}

// MinistryHandler handles the ministries page and ministry administration
type MinistryHandler struct {
	BaseHandler
	ministries  MinistryRepository
	houseGroups HouseGroupLister
	form        *contentForm[models.Ministry, models.MinistryInput]
}

// NewMinistryHandler creates a new ministry handler
func NewMinistryHandler(ministries MinistryRepository, houseGroups HouseGroupLister, renderer views.Renderer, logger *zap.Logger) *MinistryHandler {
	h := &MinistryHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		ministries:  ministries,
		houseGroups: houseGroups,
	}
	h.form = &contentForm[models.Ministry, models.MinistryInput]{
		BaseHandler:     &h.BaseHandler,
		repo:            ministries,
		view:            "ministry-form",
		currentPage:     "ministries",
		dataKey:         "ministry",
		redirectTo:      "/ministries",
		notFoundMessage: "Ministère non trouvé",
		createMessage:   "Erreur lors de la création du ministère",
		loadMessage:     "Erreur lors du chargement",
	}
	return h
}

// RegisterRoutes registers all ministry handler routes
func (h *MinistryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/ministries", func(r chi.Router) {
		r.Get("/", h.List)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)
			h.form.register(r, "/new")
		})
	})
}

// List handles GET /ministries
// A failed lookup renders both lists empty
func (h *MinistryHandler) List(w http.ResponseWriter, r *http.Request) {
	ministries, err := h.ministries.List(r.Context())
	var groups []models.HouseGroup
	if err == nil {
		groups, err = h.houseGroups.List(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to load ministries page", zap.Error(err))
		ministries, groups = []models.Ministry{}, []models.HouseGroup{}
	}

	h.render(w, r, http.StatusOK, "ministries", "ministries", views.Data{
		"ministries":  ministries,
		"houseGroups": groups,
	})
}
