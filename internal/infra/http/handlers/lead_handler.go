package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/infra/http/middleware"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

type LeadHandler struct {
	CreateUC *usecase.CreateLeadUseCase
	StatusUC *usecase.LeadStatusUseCase
	Leads    usecase.LeadRepository
}

func NewLeadHandler(create *usecase.CreateLeadUseCase, status *usecase.LeadStatusUseCase, leads usecase.LeadRepository) *LeadHandler {
	return &LeadHandler{CreateUC: create, StatusUC: status, Leads: leads}
}

type createLeadRequest struct {
	ClientName          string            `json:"client_name"`
	Phone               string            `json:"phone"`
	Email               string            `json:"email,omitempty"`
	LeadSource          entity.LeadSource `json:"lead_source"`
	SiteID              string            `json:"site_id"`
	AssignedExecutiveID string            `json:"assigned_executive_id,omitempty"`
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "no session")
		return
	}

	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), usecase.CreateLeadInput{
		Actor:               user,
		ClientName:          req.ClientName,
		Phone:               req.Phone,
		Email:               req.Email,
		Source:              req.LeadSource,
		SiteID:              req.SiteID,
		AssignedExecutiveID: req.AssignedExecutiveID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

type updateLeadRequest struct {
	ClientName string            `json:"client_name"`
	Phone      string            `json:"phone"`
	Email      string            `json:"email,omitempty"`
	LeadSource entity.LeadSource `json:"lead_source"`
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "no session")
		return
	}

	var req updateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	lead, err := h.CreateUC.UpdateDetails(r.Context(), usecase.UpdateLeadDetailsInput{
		Actor:      user,
		LeadID:     chi.URLParam(r, "leadID"),
		ClientName: req.ClientName,
		Phone:      req.Phone,
		Email:      req.Email,
		Source:     req.LeadSource,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

type transitionRequest struct {
	Status entity.LeadStatus `json:"status"`
}

type transitionResponse struct {
	Lead           *entity.Lead `json:"lead"`
	Applied        bool         `json:"applied"`
	AwaitingAmount bool         `json:"awaiting_amount"`
}

// HandleTransition runs the first phase of a funnel move. A Booked
// request answers awaiting_amount=true; the client then posts the
// amount to the booking endpoint.
func (h *LeadHandler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "no session")
		return
	}
	if user.Role == entity.RoleManager {
		writeErrorResponse(w, http.StatusForbidden, "permission_denied", "managers cannot move leads")
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	outcome, err := h.StatusUC.RequestTransition(r.Context(), chi.URLParam(r, "leadID"), req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transitionResponse{
		Lead:           outcome.Lead,
		Applied:        outcome.Applied,
		AwaitingAmount: outcome.AwaitingAmount,
	})
}

type confirmBookingRequest struct {
	Amount float64 `json:"amount"`
}

func (h *LeadHandler) HandleConfirmBooking(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "no session")
		return
	}
	if user.Role == entity.RoleManager {
		writeErrorResponse(w, http.StatusForbidden, "permission_denied", "managers cannot book leads")
		return
	}

	var req confirmBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	booking, err := h.StatusUC.ConfirmBooking(r.Context(), chi.URLParam(r, "leadID"), req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.RecordBooking(booking.Amount)
	writeJSON(w, http.StatusCreated, booking)
}

// HandleList scopes to the executive's own leads and supports
// ?status= filtering.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "no session")
		return
	}

	leads, err := h.Leads.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	statusFilter := r.URL.Query().Get("status")
	out := []entity.Lead{}
	for _, lead := range leads {
		if user.Role == entity.RoleExecutive && lead.AssignedExecutiveID != user.ID {
			continue
		}
		if statusFilter != "" && string(lead.Status) != statusFilter {
			continue
		}
		out = append(out, lead)
	}

	writeJSON(w, http.StatusOK, out)
}
