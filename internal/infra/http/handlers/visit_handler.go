package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/infra/http/middleware"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

type VisitHandler struct {
	CheckInUC   *usecase.CheckInUseCase
	CheckOutUC  *usecase.CheckOutUseCase
	Visits      usecase.VisitRepository
	rateLimiter *RateLimiter
}

func NewVisitHandler(checkIn *usecase.CheckInUseCase, checkOut *usecase.CheckOutUseCase, visits usecase.VisitRepository) *VisitHandler {
	return &VisitHandler{
		CheckInUC:   checkIn,
		CheckOutUC:  checkOut,
		Visits:      visits,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 check-in attempts/min per user
	}
}

type checkInRequest struct {
	NewLead *usecase.NewLeadData `json:"new_lead,omitempty"`
}

type checkInResponse struct {
	Visit          *entity.Visit `json:"visit"`
	Lead           *entity.Lead  `json:"lead"`
	LeadCreated    bool          `json:"lead_created"`
	DistanceMeters float64       `json:"distance_meters"`
}

func (h *VisitHandler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "no session")
		return
	}

	if !h.rateLimiter.Allow(user.ID) {
		writeErrorResponse(w, http.StatusTooManyRequests, "rate_limited", "too many check-in attempts, try again later")
		return
	}

	var req checkInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
	}

	output, err := h.CheckInUC.Execute(r.Context(), usecase.CheckInInput{
		Executive: user,
		NewLead:   req.NewLead,
	})
	if err != nil {
		if usecase.IsGeoFenceViolation(err) {
			middleware.RecordGeoFenceViolation()
		}
		middleware.RecordCheckIn("rejected")
		writeDomainError(w, err)
		return
	}

	middleware.RecordCheckIn("success")
	writeJSON(w, http.StatusCreated, checkInResponse{
		Visit:          output.Visit,
		Lead:           output.Lead,
		LeadCreated:    output.LeadCreated,
		DistanceMeters: output.DistanceMeters,
	})
}

func (h *VisitHandler) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "no session")
		return
	}
	if user.Role != entity.RoleExecutive {
		writeErrorResponse(w, http.StatusForbidden, "permission_denied", "only executives check out of visits")
		return
	}

	visit, err := h.CheckOutUC.Execute(r.Context(), chi.URLParam(r, "visitID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, visit)
}

type visitListItem struct {
	entity.Visit
	DurationMinutes int `json:"duration_minutes"`
}

// HandleList returns visits newest first; executives see only their
// own.
func (h *VisitHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "no session")
		return
	}

	visits, err := h.Visits.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	items := []visitListItem{}
	for _, visit := range visits {
		if user.Role == entity.RoleExecutive && visit.ExecutiveID != user.ID {
			continue
		}
		items = append(items, visitListItem{
			Visit:           visit,
			DurationMinutes: int(visit.Duration().Round(time.Minute) / time.Minute),
		})
	}

	writeJSON(w, http.StatusOK, items)
}
