package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Site is a physical project location with a circular geofence around it.
type Site struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	RadiusMeters float64   `json:"radius"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewSite(name string, latitude, longitude, radiusMeters float64) (*Site, error) {
	site := &Site{
		ID:           uuid.New().String(),
		Name:         name,
		Latitude:     latitude,
		Longitude:    longitude,
		RadiusMeters: radiusMeters,
		CreatedAt:    time.Now(),
	}

	if err := site.Validate(); err != nil {
		return nil, err
	}

	return site, nil
}

func (s *Site) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Latitude < -90 || s.Latitude > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	if s.RadiusMeters <= 0 {
		return errors.New("radius must be greater than zero")
	}
	return nil
}
