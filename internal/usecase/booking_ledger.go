package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/fieldsales/internal/entity"
)

// BookingLedger enforces the one-committed-deal-per-lead rule. Entries
// are append-only; callers wanting atomicity with a lead update run
// Append inside a Transaction and register Remove as its compensation.
type BookingLedger struct {
	Bookings BookingRepository
	Now      func() time.Time
}

func NewBookingLedger(bookings BookingRepository) *BookingLedger {
	return &BookingLedger{Bookings: bookings, Now: time.Now}
}

func (l *BookingLedger) Append(ctx context.Context, lead *entity.Lead, amount float64) (*entity.Booking, error) {
	booking, err := entity.NewBooking(lead.ID, lead.SiteID, lead.AssignedExecutiveID, amount, l.now())
	if err != nil {
		return nil, NewValidationError("%v", err)
	}

	existing, err := l.Bookings.FindByLeadID(ctx, lead.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewValidationError("duplicate booking for lead %s", lead.ID)
	}

	if err := l.Bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

func (l *BookingLedger) Remove(ctx context.Context, bookingID string) error {
	return l.Bookings.Delete(ctx, bookingID)
}

func (l *BookingLedger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}
