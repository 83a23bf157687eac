// Package location talks to the device gateway that relays each field
// executive's current GPS fix. It is the only slow collaborator in a
// check-in; every failure is mapped onto the location error taxonomy so
// callers can tell a denied permission from a dead gateway.
package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/xavierca1/fieldsales/internal/geofence"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

type GatewayClient struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
}

func NewGatewayClient(baseURL, apiKey string) *GatewayClient {
	return &GatewayClient{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		BaseURL:    baseURL,
		APIKey:     apiKey,
	}
}

// Current fetches the executive's device fix. Timeouts, denied consent
// and gateway outages all come back as LocationAcquisitionError.
func (c *GatewayClient) Current(ctx context.Context, executiveID string) (geofence.Point, error) {
	endpoint := fmt.Sprintf("%s/devices/%s/location", c.BaseURL, url.PathEscape(executiveID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return geofence.Point{}, &usecase.LocationAcquisitionError{
			Reason: usecase.LocationUnavailable, Message: err.Error(),
		}
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		reason := usecase.LocationUnavailable
		var urlErr *url.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &urlErr) && urlErr.Timeout()) {
			reason = usecase.LocationTimeout
		}
		return geofence.Point{}, &usecase.LocationAcquisitionError{Reason: reason, Message: err.Error()}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusForbidden:
		return geofence.Point{}, &usecase.LocationAcquisitionError{
			Reason:  usecase.LocationPermissionDenied,
			Message: gatewayMessage(resp, "device owner denied location sharing"),
		}
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return geofence.Point{}, &usecase.LocationAcquisitionError{
			Reason:  usecase.LocationTimeout,
			Message: gatewayMessage(resp, "device did not answer in time"),
		}
	default:
		return geofence.Point{}, &usecase.LocationAcquisitionError{
			Reason:  usecase.LocationUnavailable,
			Message: gatewayMessage(resp, fmt.Sprintf("gateway returned %d", resp.StatusCode)),
		}
	}

	var body DeviceLocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geofence.Point{}, &usecase.LocationAcquisitionError{
			Reason: usecase.LocationUnavailable, Message: "malformed gateway response: " + err.Error(),
		}
	}

	return geofence.Point{Latitude: body.Latitude, Longitude: body.Longitude}, nil
}

func gatewayMessage(resp *http.Response, fallback string) string {
	var ge gatewayError
	if err := json.NewDecoder(resp.Body).Decode(&ge); err == nil && ge.Message != "" {
		return ge.Message
	}
	return fallback
}
