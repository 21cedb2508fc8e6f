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

// TeamMemberRepository is the interface that wraps methods for Team members table data access
type TeamMemberRepository interface {
	ContentRepository[models.TeamMember, models.TeamMemberInput]
	// Method List retrieves every team member by display order.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context) ([]models.TeamMember, error)
}

// ChurchValueRepository is the interface that wraps methods for Church values table data access
type ChurchValueRepository interface {
	ContentRepository[models.ChurchValue, models.ChurchValueInput]
	// Method List retrieves every church value by display order.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context) ([]models.ChurchValue, error)
}

// AboutHandler handles the about page and the administration of its team and values
type AboutHandler struct {
	BaseHandler
	team   TeamMemberRepository
	values ChurchValueRepository

	teamForm   *contentForm[models.TeamMember, models.TeamMemberInput]
	valuesForm *contentForm[models.ChurchValue, models.ChurchValueInput]
}

// NewAboutHandler creates a new about handler
func NewAboutHandler(team TeamMemberRepository, values ChurchValueRepository, renderer views.Renderer, logger *zap.Logger) *AboutHandler {
	h := &AboutHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		team:        team,
		values:      values,
	}
	h.teamForm = &contentForm[models.TeamMember, models.TeamMemberInput]{
		BaseHandler:     &h.BaseHandler,
		repo:            team,
		view:            "team-form",
		currentPage:     "about",
		dataKey:         "member",
		redirectTo:      "/about",
		notFoundMessage: "Membre non trouvé",
		createMessage:   "Erreur lors de la création du membre",
		loadMessage:     "Erreur lors du chargement",
	}
	h.valuesForm = &contentForm[models.ChurchValue, models.ChurchValueInput]{
		BaseHandler:     &h.BaseHandler,
		repo:            values,
		view:            "value-form",
		currentPage:     "about",
		dataKey:         "valueItem",
		redirectTo:      "/about#values",
		notFoundMessage: "Valeur non trouvée",
		createMessage:   "Erreur lors de la création de la valeur",
		loadMessage:     "Erreur lors du chargement",
	}
	return h
}

// RegisterRoutes registers all about handler routes
func (h *AboutHandler) RegisterRoutes(r chi.Router) {
	r.Get("/about", h.About)
	r.Route("/team", func(r chi.Router) {
		r.Use(middleware.RequireSession)
		h.teamForm.register(r, "/new")
	})
	r.Route("/values", func(r chi.Router) {
		r.Use(middleware.RequireSession)
		h.valuesForm.register(r, "/new")
	})
}

// About handles GET /about
// A failed lookup renders both lists empty
func (h *AboutHandler) About(w http.ResponseWriter, r *http.Request) {
	team, err := h.team.List(r.Context())
	var values []models.ChurchValue
	if err == nil {
		values, err = h.values.List(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to load about page", zap.Error(err))
		team, values = []models.TeamMember{}, []models.ChurchValue{}
	}

	h.render(w, r, http.StatusOK, "about", "about", views.Data{
		"team":         team,
		"churchValues": values,
	})
}
