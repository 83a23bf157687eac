package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/infra/http/middleware"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

type SiteHandler struct {
	Sites usecase.SiteRepository
}

func NewSiteHandler(sites usecase.SiteRepository) *SiteHandler {
	return &SiteHandler{Sites: sites}
}

type siteRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

func (h *SiteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	sites, err := h.Sites.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sites)
}

func (h *SiteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req siteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	site, err := entity.NewSite(req.Name, req.Latitude, req.Longitude, req.Radius)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.Sites.Create(r.Context(), site); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, site)
}

func (h *SiteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req siteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	site, err := h.Sites.FindByID(r.Context(), chi.URLParam(r, "siteID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	site.Name = req.Name
	site.Latitude = req.Latitude
	site.Longitude = req.Longitude
	site.RadiusMeters = req.Radius
	if err := site.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.Sites.Update(r.Context(), site); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, site)
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "no session")
		return false
	}
	if user.Role != entity.RoleAdmin {
		writeErrorResponse(w, http.StatusForbidden, "permission_denied", "admin role required")
		return false
	}
	return true
}
