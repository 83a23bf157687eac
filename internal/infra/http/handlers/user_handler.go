package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/infra/http/middleware"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

type UserHandler struct {
	Users usecase.UserRepository
	Sites usecase.SiteRepository
}

func NewUserHandler(users usecase.UserRepository, sites usecase.SiteRepository) *UserHandler {
	return &UserHandler{Users: users, Sites: sites}
}

func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "no session")
		return
	}
	if user.Role == entity.RoleExecutive {
		writeErrorResponse(w, http.StatusForbidden, "permission_denied", "admin or manager role required")
		return
	}

	users, err := h.Users.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type createUserRequest struct {
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Role           entity.Role `json:"role"`
	AssignedSiteID string      `json:"assigned_site_id,omitempty"`
}

func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	user, err := entity.NewUser(req.Name, req.Email, req.Role, req.AssignedSiteID)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if user.AssignedSiteID != "" {
		if _, err := h.Sites.FindByID(r.Context(), user.AssignedSiteID); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	if err := h.Users.Create(r.Context(), user); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
