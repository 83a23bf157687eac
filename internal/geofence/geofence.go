// Package geofence decides whether a reported coordinate proves presence
// inside a site's circular boundary. Distances are great-circle meters.
package geofence

import (
	"fmt"

	"github.com/umahmood/haversine"

	"github.com/xavierca1/fieldsales/internal/entity"
)

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Result struct {
	Verified       bool    `json:"verified"`
	DistanceMeters float64 `json:"distance_meters"`
}

func (p Point) validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", p.Longitude)
	}
	return nil
}

// Distance returns the great-circle distance between two points in
// meters (haversine over a 6,371 km mean earth radius).
func Distance(a, b Point) (float64, error) {
	if err := a.validate(); err != nil {
		return 0, err
	}
	if err := b.validate(); err != nil {
		return 0, err
	}

	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Latitude, Lon: a.Longitude},
		haversine.Coord{Lat: b.Latitude, Lon: b.Longitude},
	)
	return km * 1000, nil
}

// Verify checks the point against the site's radius. The boundary is
// inclusive: a point exactly on the radius verifies.
func Verify(p Point, site *entity.Site) (Result, error) {
	center := Point{Latitude: site.Latitude, Longitude: site.Longitude}

	meters, err := Distance(p, center)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Verified:       meters <= site.RadiusMeters,
		DistanceMeters: meters,
	}, nil
}
