package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusVisitDone LeadStatus = "Visit Done"
	LeadStatusFollowUp  LeadStatus = "Follow-up"
	LeadStatusBooked    LeadStatus = "Booked"
	LeadStatusLost      LeadStatus = "Lost"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusVisitDone, LeadStatusFollowUp, LeadStatusBooked, LeadStatusLost:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s LeadStatus) Terminal() bool {
	return s == LeadStatusBooked || s == LeadStatusLost
}

type LeadSource string

const (
	LeadSourceWalkIn   LeadSource = "Walk-in"
	LeadSourceCampaign LeadSource = "Campaign"
	LeadSourceReferral LeadSource = "Referral"
)

func (s LeadSource) Valid() bool {
	return s == LeadSourceWalkIn || s == LeadSourceCampaign || s == LeadSourceReferral
}

// Lead is a prospective client moving through the sales funnel.
type Lead struct {
	ID                  string     `json:"id"`
	ClientName          string     `json:"client_name"`
	Phone               string     `json:"phone"`
	Email               string     `json:"email,omitempty"`
	LeadSource          LeadSource `json:"lead_source"`
	SiteID              string     `json:"site_id"`
	AssignedExecutiveID string     `json:"assigned_executive_id"`
	Status              LeadStatus `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func NewLead(clientName, phone, email string, source LeadSource, siteID, executiveID string) (*Lead, error) {
	now := time.Now()
	lead := &Lead{
		ID:                  uuid.New().String(),
		ClientName:          clientName,
		Phone:               phone,
		Email:               email,
		LeadSource:          source,
		SiteID:              siteID,
		AssignedExecutiveID: executiveID,
		Status:              LeadStatusNew,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.ClientName == "" {
		return errors.New("client name is required")
	}
	if l.Phone == "" {
		return errors.New("phone is required")
	}
	if !l.LeadSource.Valid() {
		return errors.New("lead source must be Walk-in, Campaign or Referral")
	}
	if l.SiteID == "" {
		return errors.New("site is required")
	}
	if l.AssignedExecutiveID == "" {
		return errors.New("assigned executive is required")
	}
	if !l.Status.Valid() {
		return errors.New("status is invalid")
	}
	return nil
}

// CanTransition reports whether the funnel allows moving to the target
// status. Re-entering the terminal status the lead already occupies is
// treated as legal; callers apply it as a no-op.
func (l *Lead) CanTransition(to LeadStatus) bool {
	if l.Status.Terminal() {
		return to == l.Status
	}

	switch to {
	case LeadStatusVisitDone:
		// Only reachable from New, and only via a verified check-in.
		return l.Status == LeadStatusNew
	case LeadStatusFollowUp, LeadStatusBooked, LeadStatusLost:
		return true
	}
	return false
}

// Advance moves the lead to the target status and refreshes UpdatedAt.
// It does not consult the transition table; callers check CanTransition
// first.
func (l *Lead) Advance(to LeadStatus, at time.Time) {
	l.Status = to
	l.UpdatedAt = at
}
