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

// FAQRepository is the interface that wraps methods for FAQs table data access
type FAQRepository interface {
	ContentRepository[models.FAQ, models.FAQInput]
	// Method List retrieves every FAQ by display order.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context) ([]models.FAQ, error)
}

// ContactService is the interface that wraps methods for contact messages business logic
type ContactService interface {
	// Method Submit stores a contact form submission and schedules a staff notification.
	//
	// A notification failure does not fail the submission.
	// If some error occurs during data insert, the error will be returned together with "0" value.
	Submit(ctx context.Context, input *models.ContactMessageInput) (int, error)
	// Method List retrieves every message, newest first.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context) ([]models.ContactMessage, error)
	// Method Open retrieves a message and marks it read.
	//
	// If the message does not exist, models.ErrNotFound will be returned together with "nil" value.
	Open(ctx context.Context, id int) (*models.ContactMessage, error)
	// Method ToggleRead flips the read flag of a message. A missing message is ignored.
	ToggleRead(ctx context.Context, id int) error
	// Method Delete removes a message.
	Delete(ctx context.Context, id int) error
}

// ContactHandler handles the contact page, FAQ administration and the admin inbox
type ContactHandler struct {
	BaseHandler
	faqs     FAQRepository
	service  ContactService
	faqsForm *contentForm[models.FAQ, models.FAQInput]
}

// NewContactHandler creates a new contact handler
func NewContactHandler(faqs FAQRepository, svc ContactService, renderer views.Renderer, logger *zap.Logger) *ContactHandler {
	h := &ContactHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		faqs:        faqs,
		service:     svc,
	}
	h.faqsForm = &contentForm[models.FAQ, models.FAQInput]{
		BaseHandler:     &h.BaseHandler,
		repo:            faqs,
		view:            "faq-form",
		currentPage:     "contact",
		dataKey:         "faq",
		redirectTo:      "/contact",
		notFoundMessage: "FAQ non trouvée",
		createMessage:   "Erreur lors de la création de la FAQ",
		loadMessage:     serverErrorMessage,
	}
	return h
}

// RegisterRoutes registers all contact handler routes
func (h *ContactHandler) RegisterRoutes(r chi.Router) {
	r.Get("/contact", h.Contact)
	r.Post("/contact/send", h.Send)

	r.Route("/faqs", func(r chi.Router) {
		r.Use(middleware.RequireSession)
		h.faqsForm.register(r, "/create")
	})

	r.Route("/admin/messages", func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.Get("/", h.Messages)
		r.Get("/{id}", h.Message)
		r.Post("/toggle-read/{id}", h.ToggleRead)
		r.Post("/delete/{id}", h.DeleteMessage)
	})
}

// Contact handles GET /contact?success=true
// A failed lookup renders the page without FAQs
func (h *ContactHandler) Contact(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.faqs.List(r.Context())
	success := r.URL.Query().Get("success") == "true"
	if err != nil {
		h.logger.Error("failed to list faqs", zap.Error(err))
		faqs = []models.FAQ{}
		success = false
	}

	h.render(w, r, http.StatusOK, "contact", "contact", views.Data{
		"faqs":    faqs,
		"success": success,
	})
}

// Send handles POST /contact/send
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var input models.ContactMessageInput
	if err := h.decode(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}

	if _, err := h.service.Submit(r.Context(), &input); err != nil {
		h.serverError(w, err, "Erreur lors de l'envoi du message")
		return
	}
	h.redirect(w, r, "/contact?success=true")
}

// Messages handles GET /admin/messages
func (h *ContactHandler) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.List(r.Context())
	if err != nil {
		h.serverError(w, err, serverErrorMessage)
		return
	}

	h.render(w, r, http.StatusOK, "admin-messages", "admin", views.Data{"messages": messages})
}

// Message handles GET /admin/messages/{id}; opening a message marks it read
func (h *ContactHandler) Message(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Message non trouvé")
		return
	}

	message, err := h.service.Open(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "Message non trouvé")
		return
	}
	if err != nil {
		h.serverError(w, err, serverErrorMessage)
		return
	}

	h.render(w, r, http.StatusOK, "admin-message-detail", "admin", views.Data{"message": message})
}

// ToggleRead handles POST /admin/messages/toggle-read/{id}
func (h *ContactHandler) ToggleRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.redirect(w, r, "/admin/messages")
		return
	}

	if err := h.service.ToggleRead(r.Context(), id); err != nil {
		h.serverError(w, err, serverErrorMessage)
		return
	}
	h.redirect(w, r, "/admin/messages")
}

// DeleteMessage handles POST /admin/messages/delete/{id}
func (h *ContactHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Message non trouvé")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.serverError(w, err, "Erreur lors de la suppression")
		return
	}
	h.redirect(w, r, "/admin/messages")
}
