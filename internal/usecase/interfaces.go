package usecase

import (
	"context"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/geofence"
	"github.com/xavierca1/fieldsales/internal/infra/queue"
)

// Repositories provide atomic single-record writes and ordered reads;
// FindByID returns a NotFoundError when the record is absent, while the
// Find*By lookups return (nil, nil) for "no match" so callers can
// distinguish absence from store failure.

type SiteRepository interface {
	Create(ctx context.Context, site *entity.Site) error
	Update(ctx context.Context, site *entity.Site) error
	FindByID(ctx context.Context, id string) (*entity.Site, error)
	List(ctx context.Context) ([]entity.Site, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	// ListByExecutiveAndSite preserves insertion order; check-in picks
	// the first match.
	ListByExecutiveAndSite(ctx context.Context, executiveID, siteID string) ([]entity.Lead, error)
	List(ctx context.Context) ([]entity.Lead, error)
}

type VisitRepository interface {
	Create(ctx context.Context, visit *entity.Visit) error
	Update(ctx context.Context, visit *entity.Visit) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Visit, error)
	FindOpenByExecutive(ctx context.Context, executiveID string) (*entity.Visit, error)
	List(ctx context.Context) ([]entity.Visit, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id string) error
	FindByLeadID(ctx context.Context, leadID string) (*entity.Booking, error)
	List(ctx context.Context) ([]entity.Booking, error)
}

// LocationProvider acquires the executive's current coordinate. It is
// the only slow call in a check-in and must fail with a
// LocationAcquisitionError, never hang past its own timeout.
type LocationProvider interface {
	Current(ctx context.Context, executiveID string) (geofence.Point, error)
}

type EventPublisher interface {
	PublishVisitCheckedIn(ctx context.Context, payload queue.VisitCheckedInPayload) error
	PublishBookingCreated(ctx context.Context, payload queue.BookingCreatedPayload) error
}
