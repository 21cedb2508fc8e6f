package handlers

import (
	"context"
	"net/http"

	"github.com/egliseduberger/website/internal/models"
	"github.com/egliseduberger/website/internal/views"
	"go.uber.org/zap"
)

// footerMinistriesLimit is one more than the footer shows so the layout knows whether to link to the full list
const footerMinistriesLimit = 4

// MinistryNamesLister is the interface that wraps the lookup of ministry names for the footer
type MinistryNamesLister interface {
	// Method ListNames retrieves the ID and name of the first ministries by ID.
	//
	// "limit" parameter is the maximum number of ministries returned.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	ListNames(ctx context.Context, limit int) ([]models.Ministry, error)
}

// FooterMiddleware loads the footer ministries into the view context on every request
// A failed lookup leaves the footer empty and never fails the request
func FooterMiddleware(lister MinistryNamesLister, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ministries, err := lister.ListNames(r.Context(), footerMinistriesLimit)
			if err != nil {
				logger.Error("failed to load footer ministries", zap.Error(err))
				ministries = nil
			}
			next.ServeHTTP(w, r.WithContext(views.WithFooterMinistries(r.Context(), ministries)))
		})
	}
}
