package views

import (
	"context"

	"github.com/egliseduberger/website/internal/models"
)

type contextKey string

const (
	userKey             contextKey = "viewUser"
	footerMinistriesKey contextKey = "footerMinistries"
)

// WithUser stores the signed-in user for templates; nil means anonymous
func WithUser(ctx context.Context, user *models.CurrentUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom retrieves the signed-in user, or nil when the request is anonymous
func UserFrom(ctx context.Context) *models.CurrentUser {
	user, _ := ctx.Value(userKey).(*models.CurrentUser)
	return user
}

// WithFooterMinistries stores the ministries listed in the page footer
func WithFooterMinistries(ctx context.Context, ministries []models.Ministry) context.Context {
	return context.WithValue(ctx, footerMinistriesKey, ministries)
}

// FooterMinistriesFrom retrieves the footer ministries, never nil
func FooterMinistriesFrom(ctx context.Context) []models.Ministry {
	if ministries, ok := ctx.Value(footerMinistriesKey).([]models.Ministry); ok && ministries != nil {
		return ministries
	}
	return []models.Ministry{}
}
