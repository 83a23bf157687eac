package usecase

import (
	"errors"
	"fmt"
)

// All five error kinds below are recoverable by the caller: fix the
// input, move closer to the site, or retry the location read. Store
// failures are never mapped into them; those propagate as-is.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func IsNotFoundError(err error) bool {
	var v *NotFoundError
	return errors.As(err, &v)
}

type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

func IsPermissionError(err error) bool {
	var v *PermissionError
	return errors.As(err, &v)
}

// GeoFenceViolation is a business rejection, not a fault: the caller is
// simply outside the allowed radius.
type GeoFenceViolation struct {
	SiteName       string
	DistanceMeters float64
	RadiusMeters   float64
}

func (e *GeoFenceViolation) Error() string {
	return fmt.Sprintf("outside the geofence for %s: %.0fm away, allowed radius %.0fm",
		e.SiteName, e.DistanceMeters, e.RadiusMeters)
}

func IsGeoFenceViolation(err error) bool {
	var v *GeoFenceViolation
	return errors.As(err, &v)
}

type LocationFailure string

const (
	LocationUnavailable      LocationFailure = "unavailable"
	LocationPermissionDenied LocationFailure = "permission_denied"
	LocationTimeout          LocationFailure = "timeout"
)

type LocationAcquisitionError struct {
	Reason  LocationFailure
	Message string
}

func (e *LocationAcquisitionError) Error() string {
	return fmt.Sprintf("location acquisition failed (%s): %s", e.Reason, e.Message)
}

func IsLocationAcquisitionError(err error) bool {
	var v *LocationAcquisitionError
	return errors.As(err, &v)
}
