package handlers

import (
	"context"
	"net/http"

	"github.com/xavierca1/fieldsales/internal/analytics"
	"github.com/xavierca1/fieldsales/internal/infra/http/middleware"
)

type SnapshotLoader interface {
	Load(ctx context.Context) (analytics.Snapshot, error)
}

type AnalyticsHandler struct {
	Loader SnapshotLoader
}

func NewAnalyticsHandler(loader SnapshotLoader) *AnalyticsHandler {
	return &AnalyticsHandler{Loader: loader}
}

// Handle recomputes the full report for the caller on every request;
// there is no cache to invalidate.
func (h *AnalyticsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "no session")
		return
	}

	window := analytics.TimeWindow(r.URL.Query().Get("range"))
	if window == "" {
		window = analytics.WindowAll
	}
	if !window.Valid() {
		writeErrorResponse(w, http.StatusBadRequest, "validation_error", "range must be all, month or week")
		return
	}

	snap, err := h.Loader.Load(r.Context())
	if err != nil {
		// Store unavailability is fatal, never "no data".
		writeErrorResponse(w, http.StatusInternalServerError, "store_unavailable", err.Error())
		return
	}

	report := analytics.Compute(snap, analytics.Query{
		ViewerRole: user.Role,
		ViewerID:   user.ID,
		Window:     window,
	})

	writeJSON(w, http.StatusOK, report)
}
