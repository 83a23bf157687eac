package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/fieldsales/internal/entity"
)

type CreateLeadInput struct {
	Actor               *entity.User
	ClientName          string
	Phone               string
	Email               string
	Source              entity.LeadSource
	SiteID              string
	AssignedExecutiveID string
}

type CreateLeadUseCase struct {
	Leads LeadRepository
	Sites SiteRepository
	Users UserRepository
	Gate  *StoreGate
}

func NewCreateLeadUseCase(leads LeadRepository, sites SiteRepository, users UserRepository, gate *StoreGate) *CreateLeadUseCase {
	return &CreateLeadUseCase{Leads: leads, Sites: sites, Users: users, Gate: gate}
}

// Execute captures a new lead at status New. Executives always own the
// leads they capture; admins pick the executive.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	actor := input.Actor
	if actor == nil {
		return nil, NewValidationError("actor is required")
	}

	executiveID := input.AssignedExecutiveID
	switch actor.Role {
	case entity.RoleExecutive:
		executiveID = actor.ID
	case entity.RoleAdmin:
		if executiveID == "" {
			return nil, NewValidationError("assigned executive is required")
		}
	default:
		return nil, &PermissionError{Message: "only admins and executives can create leads"}
	}

	uc.Gate.Lock()
	defer uc.Gate.Unlock()

	if _, err := uc.Sites.FindByID(ctx, input.SiteID); err != nil {
		return nil, err
	}

	executive, err := uc.Users.FindByID(ctx, executiveID)
	if err != nil {
		return nil, err
	}
	if executive.Role != entity.RoleExecutive {
		return nil, NewValidationError("leads can only be assigned to executives")
	}

	lead, err := entity.NewLead(input.ClientName, input.Phone, input.Email, input.Source,
		input.SiteID, executiveID)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	return lead, nil
}

type UpdateLeadDetailsInput struct {
	Actor      *entity.User
	LeadID     string
	ClientName string
	Phone      string
	Email      string
	Source     entity.LeadSource
}

// UpdateDetails edits contact fields only; funnel moves go through the
// LeadStatusUseCase.
func (uc *CreateLeadUseCase) UpdateDetails(ctx context.Context, input UpdateLeadDetailsInput) (*entity.Lead, error) {
	actor := input.Actor
	if actor == nil {
		return nil, NewValidationError("actor is required")
	}

	uc.Gate.Lock()
	defer uc.Gate.Unlock()

	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		return nil, err
	}

	if actor.Role == entity.RoleExecutive && lead.AssignedExecutiveID != actor.ID {
		return nil, &PermissionError{Message: "executives can only edit their own leads"}
	}
	if actor.Role == entity.RoleManager {
		return nil, &PermissionError{Message: "managers cannot edit leads"}
	}

	lead.ClientName = input.ClientName
	lead.Phone = input.Phone
	lead.Email = input.Email
	lead.LeadSource = input.Source
	if err := lead.Validate(); err != nil {
		return nil, NewValidationError("%v", err)
	}
	lead.UpdatedAt = time.Now()

	if err := uc.Leads.Update(ctx, lead); err != nil {
		return nil, err
	}

	return lead, nil
}
