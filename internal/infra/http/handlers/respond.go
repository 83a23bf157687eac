package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/xavierca1/fieldsales/internal/usecase"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeDomainError maps the recoverable error taxonomy onto HTTP
// statuses; anything unrecognized is a store/infra failure and
// surfaces as a 500 rather than being swallowed.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case usecase.IsValidationError(err):
		writeErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
	case usecase.IsNotFoundError(err):
		writeErrorResponse(w, http.StatusNotFound, "not_found", err.Error())
	case usecase.IsPermissionError(err):
		writeErrorResponse(w, http.StatusForbidden, "permission_denied", err.Error())
	case usecase.IsGeoFenceViolation(err):
		writeErrorResponse(w, http.StatusUnprocessableEntity, "geofence_violation", err.Error())
	case usecase.IsLocationAcquisitionError(err):
		writeErrorResponse(w, http.StatusBadGateway, "location_unavailable", err.Error())
	default:
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// RateLimiter throttles per-caller bursts (the device gateway is paid
// per request).
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	windowEnd time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors[key]
	if !ok || now.After(v.windowEnd) {
		rl.visitors[key] = &visitor{count: 1, windowEnd: now.Add(rl.window)}
		return true
	}

	if v.count >= rl.limit {
		return false
	}
	v.count++
	return true
}
