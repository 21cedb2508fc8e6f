package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strconv"

	"github.com/egliseduberger/website/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const serverErrorMessage = "Erreur serveur"

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	logger   *zap.Logger
	renderer views.Renderer
}

// render executes a view with the base context every page expects
//
// "currentPage" is the navigation key highlighted by the layout.
// The signed-in user and the footer ministries are taken from the request context.
// A failed render answers 500 with a plain text body.
func (h *BaseHandler) render(w http.ResponseWriter, r *http.Request, status int, view, currentPage string, data views.Data) {
	if data == nil {
		data = views.Data{}
	}
	data["currentPage"] = currentPage
	data["user"] = views.UserFrom(r.Context())
	data["footerMinistries"] = views.FooterMinistriesFrom(r.Context())

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, view, data); err != nil {
		h.logger.Error("failed to render view", zap.String("view", view), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

// respondError sends a plain text error response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	http.Error(w, message, status)
}

// serverError logs err and answers 500 with the given message
func (h *BaseHandler) serverError(w http.ResponseWriter, err error, message string) {
	h.logger.Error("request failed", zap.String("response", message), zap.Error(err))
	h.respondError(w, http.StatusInternalServerError, message)
}

// redirect sends a 302 to location
func (h *BaseHandler) redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusFound)
}

// pathID parses the {id} URL parameter
// Non-numeric ids are reported as missing so the caller can answer 404
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// decode fills dst, a pointer to a struct of string fields, from a JSON or form-encoded body
//
// Form values are matched on the "form" struct tag; absent fields stay empty.
func (h *BaseHandler) decode(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return fmt.Errorf("failed to decode JSON body: %w", err)
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse form: %w", err)
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode target must be a pointer to a struct, got %T", dst)
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("form")
		if name == "" || field.Type.Kind() != reflect.String {
			continue
		}
		v.Field(i).SetString(r.PostForm.Get(name))
	}

	return nil
}
