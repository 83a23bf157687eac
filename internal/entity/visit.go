package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Visit records an executive's verified presence at a site for a lead.
// A visit with no checkout time is still open; once checked out it is
// immutable.
type Visit struct {
	ID               string     `json:"id"`
	LeadID           string     `json:"lead_id"`
	ExecutiveID      string     `json:"executive_id"`
	SiteID           string     `json:"site_id"`
	CheckinTime      time.Time  `json:"checkin_time"`
	CheckoutTime     *time.Time `json:"checkout_time,omitempty"`
	LocationVerified bool       `json:"location_verified"`
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
}

func NewVisit(leadID, executiveID, siteID string, latitude, longitude float64, checkinTime time.Time) *Visit {
	return &Visit{
		ID:               uuid.New().String(),
		LeadID:           leadID,
		ExecutiveID:      executiveID,
		SiteID:           siteID,
		CheckinTime:      checkinTime,
		LocationVerified: true,
		Latitude:         latitude,
		Longitude:        longitude,
	}
}

func (v *Visit) Open() bool {
	return v.CheckoutTime == nil
}

func (v *Visit) Close(at time.Time) error {
	if v.CheckoutTime != nil {
		return errors.New("visit is already checked out")
	}
	if at.Before(v.CheckinTime) {
		return errors.New("checkout time cannot precede checkin time")
	}
	v.CheckoutTime = &at
	return nil
}

// Duration is zero while the visit is still open.
func (v *Visit) Duration() time.Duration {
	if v.CheckoutTime == nil {
		return 0
	}
	return v.CheckoutTime.Sub(v.CheckinTime)
}
