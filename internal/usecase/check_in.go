package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/geofence"
	"github.com/xavierca1/fieldsales/internal/infra/queue"
)

// NewLeadData is supplied by the caller when the executive has no lead
// yet for the assigned site; the lead is created inside the same
// check-in transaction.
type NewLeadData struct {
	ClientName string            `json:"client_name"`
	Phone      string            `json:"phone"`
	Email      string            `json:"email,omitempty"`
	Source     entity.LeadSource `json:"lead_source"`
}

type CheckInInput struct {
	Executive *entity.User
	NewLead   *NewLeadData
}

type CheckInOutput struct {
	Visit          *entity.Visit
	Lead           *entity.Lead
	LeadCreated    bool
	DistanceMeters float64
}

type CheckInUseCase struct {
	Sites    SiteRepository
	Leads    LeadRepository
	Visits   VisitRepository
	Location LocationProvider
	Events   EventPublisher
	Gate     *StoreGate
	Log      *logrus.Logger
	Now      func() time.Time
}

func NewCheckInUseCase(
	sites SiteRepository,
	leads LeadRepository,
	visits VisitRepository,
	location LocationProvider,
	events EventPublisher,
	gate *StoreGate,
	log *logrus.Logger,
) *CheckInUseCase {
	return &CheckInUseCase{
		Sites:    sites,
		Leads:    leads,
		Visits:   visits,
		Location: location,
		Events:   events,
		Gate:     gate,
		Log:      log,
		Now:      time.Now,
	}
}

// Execute runs the whole check-in: role gate, location acquisition,
// geofence check, lead selection (or creation), visit write and lead
// advancement. Either a verified visit exists afterwards or nothing was
// written.
func (uc *CheckInUseCase) Execute(ctx context.Context, input CheckInInput) (*CheckInOutput, error) {
	executive := input.Executive
	if executive == nil {
		return nil, NewValidationError("executive is required")
	}
	if executive.Role != entity.RoleExecutive {
		return nil, &PermissionError{Message: "only sales executives can check in"}
	}
	if executive.AssignedSiteID == "" {
		return nil, NewValidationError("no site assigned to executive %s", executive.ID)
	}

	// The only suspension point, before any write. No store lock is
	// held while waiting on the device.
	point, err := uc.Location.Current(ctx, executive.ID)
	if err != nil {
		if IsLocationAcquisitionError(err) {
			return nil, err
		}
		return nil, &LocationAcquisitionError{Reason: LocationUnavailable, Message: err.Error()}
	}

	uc.Gate.Lock()
	defer uc.Gate.Unlock()

	site, err := uc.Sites.FindByID(ctx, executive.AssignedSiteID)
	if err != nil {
		return nil, err
	}

	result, err := geofence.Verify(point, site)
	if err != nil {
		return nil, NewValidationError("invalid coordinate: %v", err)
	}
	if !result.Verified {
		return nil, &GeoFenceViolation{
			SiteName:       site.Name,
			DistanceMeters: result.DistanceMeters,
			RadiusMeters:   site.RadiusMeters,
		}
	}

	if open, err := uc.Visits.FindOpenByExecutive(ctx, executive.ID); err != nil {
		return nil, err
	} else if open != nil {
		return nil, NewValidationError("executive already has an open visit (%s); check out first", open.ID)
	}

	lead, created, err := uc.selectLead(ctx, executive, input.NewLead)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	visit := entity.NewVisit(lead.ID, executive.ID, site.ID, point.Latitude, point.Longitude, now)

	txn := NewTransaction(uc.Log)

	if created {
		txn.AddOperation("create_lead", func(ctx context.Context) error {
			return uc.Leads.Create(ctx, lead)
		})
		txn.AddCompensation("delete_lead", func(ctx context.Context) error {
			return uc.Leads.Delete(ctx, lead.ID)
		})
	}

	txn.AddOperation("create_visit", func(ctx context.Context) error {
		return uc.Visits.Create(ctx, visit)
	})
	txn.AddCompensation("delete_visit", func(ctx context.Context) error {
		return uc.Visits.Delete(ctx, visit.ID)
	})

	// New leads advance to Visit Done; leads already past New are left
	// where they are. Repeated check-ins never move a lead backward.
	if lead.CanTransition(entity.LeadStatusVisitDone) {
		txn.AddOperation("advance_lead", func(ctx context.Context) error {
			lead.Advance(entity.LeadStatusVisitDone, now)
			return uc.Leads.Update(ctx, lead)
		})
	}

	if err := txn.Execute(ctx); err != nil {
		return nil, err
	}

	if uc.Events != nil {
		if err := uc.Events.PublishVisitCheckedIn(ctx, queue.VisitCheckedInPayload{
			VisitID:        visit.ID,
			LeadID:         lead.ID,
			ExecutiveID:    executive.ID,
			SiteID:         site.ID,
			DistanceMeters: result.DistanceMeters,
			CheckinTime:    visit.CheckinTime,
		}); err != nil && uc.Log != nil {
			uc.Log.WithError(err).Warn("failed to publish check-in event")
		}
	}

	return &CheckInOutput{
		Visit:          visit,
		Lead:           lead,
		LeadCreated:    created,
		DistanceMeters: result.DistanceMeters,
	}, nil
}

func (uc *CheckInUseCase) selectLead(ctx context.Context, executive *entity.User, data *NewLeadData) (*entity.Lead, bool, error) {
	leads, err := uc.Leads.ListByExecutiveAndSite(ctx, executive.ID, executive.AssignedSiteID)
	if err != nil {
		return nil, false, err
	}
	if len(leads) > 0 {
		return &leads[0], false, nil
	}

	if data == nil {
		return nil, false, NewNotFoundError("no eligible lead for site", executive.AssignedSiteID)
	}

	lead, err := entity.NewLead(data.ClientName, data.Phone, data.Email, data.Source,
		executive.AssignedSiteID, executive.ID)
	if err != nil {
		return nil, false, NewValidationError("invalid lead data: %v", err)
	}
	return lead, true, nil
}

func (uc *CheckInUseCase) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}
