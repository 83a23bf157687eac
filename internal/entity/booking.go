package entity

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Booking is the committed deal created when a lead is won. At most one
// booking ever exists per lead, and it is never mutated afterwards.
type Booking struct {
	ID          string    `json:"id"`
	LeadID      string    `json:"lead_id"`
	SiteID      string    `json:"site_id"`
	ExecutiveID string    `json:"executive_id"`
	Amount      float64   `json:"amount"`
	BookingDate time.Time `json:"booking_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewBooking(leadID, siteID, executiveID string, amount float64, at time.Time) (*Booking, error) {
	booking := &Booking{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		SiteID:      siteID,
		ExecutiveID: executiveID,
		Amount:      amount,
		BookingDate: at,
		CreatedAt:   at,
	}

	if err := booking.Validate(); err != nil {
		return nil, err
	}

	return booking, nil
}

func (b *Booking) Validate() error {
	if b.LeadID == "" {
		return errors.New("lead is required")
	}
	if math.IsNaN(b.Amount) || math.IsInf(b.Amount, 0) {
		return errors.New("amount must be a finite number")
	}
	if b.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}
	return nil
}
