package location_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/fieldsales/internal/infra/location"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

func TestCurrentReturnsDeviceFix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/devices/exec-1/location", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latitude": 28.6139, "longitude": 77.2090, "fix_age_seconds": 12}`))
	}))
	defer server.Close()

	client := location.NewGatewayClient(server.URL, "test-key")

	point, err := client.Current(context.Background(), "exec-1")

	require.NoError(t, err)
	assert.Equal(t, 28.6139, point.Latitude)
	assert.Equal(t, 77.2090, point.Longitude)
}

func TestCurrentMapsGatewayStatuses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		reason usecase.LocationFailure
	}{
		{"forbidden is permission denied", http.StatusForbidden, usecase.LocationPermissionDenied},
		{"request timeout", http.StatusRequestTimeout, usecase.LocationTimeout},
		{"gateway timeout", http.StatusGatewayTimeout, usecase.LocationTimeout},
		{"server error is unavailable", http.StatusInternalServerError, usecase.LocationUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			client := location.NewGatewayClient(server.URL, "test-key")

			_, err := client.Current(context.Background(), "exec-1")

			var locErr *usecase.LocationAcquisitionError
			require.ErrorAs(t, err, &locErr)
			assert.Equal(t, tc.reason, locErr.Reason)
		})
	}
}

func TestCurrentPrefersGatewayErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "user revoked location consent"}`))
	}))
	defer server.Close()

	client := location.NewGatewayClient(server.URL, "test-key")

	_, err := client.Current(context.Background(), "exec-1")

	var locErr *usecase.LocationAcquisitionError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, "user revoked location consent", locErr.Message)
}

func TestCurrentDeadGatewayIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := location.NewGatewayClient(server.URL, "test-key")

	_, err := client.Current(context.Background(), "exec-1")

	var locErr *usecase.LocationAcquisitionError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, usecase.LocationUnavailable, locErr.Reason)
}

func TestCurrentMalformedBodyIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := location.NewGatewayClient(server.URL, "test-key")

	_, err := client.Current(context.Background(), "exec-1")

	var locErr *usecase.LocationAcquisitionError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, usecase.LocationUnavailable, locErr.Reason)
}
