// Package api is the client's single gateway to the GoBarber HTTP backend.
// It exposes the generic verbs the screens build on and one typed method per
// endpoint. No retries: every failure is surfaced to the caller immediately.
package api

import (
	"context"
	"errors"
	"time"

	"gobarber-cli/internal/client/models"
)

var (
	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized maps a 401 response.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound maps a 404 response.
	ErrNotFound = errors.New("not found")
)

// TokenSource supplies the current bearer token, or "" when signed out.
// The session store provides one; the gateway never caches the value.
type TokenSource func() string

// ProfileUpdate carries the editable profile fields. The password trio is
// optional; when Password is set the server requires OldPassword too.
type ProfileUpdate struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	OldPassword          string `json:"old_password,omitempty"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

// Client defines the remote operations the screens and the scheduler use.
type Client interface {
	// CreateSession authenticates and returns the token+user pair.
	CreateSession(ctx context.Context, email, password string) (models.Session, error)

	// CreateUser registers a new account.
	CreateUser(ctx context.Context, name, email, password string) (models.User, error)

	// ListProviders returns every bookable provider.
	ListProviders(ctx context.Context) ([]models.Provider, error)

	// DayAvailability returns the hour slots of one provider on one day.
	DayAvailability(ctx context.Context, providerID string, day time.Time) ([]models.AvailabilitySlot, error)

	// CreateAppointment books the given provider at the given instant.
	CreateAppointment(ctx context.Context, providerID string, date time.Time) (models.Appointment, error)

	// UpdateProfile saves profile changes and returns the updated user.
	UpdateProfile(ctx context.Context, p ProfileUpdate) (models.User, error)

	// UpdateAvatar uploads a new avatar image and returns the updated user.
	UpdateAvatar(ctx context.Context, filename string, data []byte) (models.User, error)
}
