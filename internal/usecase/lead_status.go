package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/infra/queue"
)

// TransitionOutcome reports what RequestTransition did. AwaitingAmount
// means nothing was written: the caller must collect a booking amount
// and come back through ConfirmBooking.
type TransitionOutcome struct {
	Lead           *entity.Lead
	Applied        bool
	AwaitingAmount bool
}

type LeadStatusUseCase struct {
	Leads  LeadRepository
	Ledger *BookingLedger
	Events EventPublisher
	Gate   *StoreGate
	Log    *logrus.Logger
	Now    func() time.Time
}

func NewLeadStatusUseCase(
	leads LeadRepository,
	ledger *BookingLedger,
	events EventPublisher,
	gate *StoreGate,
	log *logrus.Logger,
) *LeadStatusUseCase {
	return &LeadStatusUseCase{
		Leads:  leads,
		Ledger: ledger,
		Events: events,
		Gate:   gate,
		Log:    log,
		Now:    time.Now,
	}
}

// RequestTransition applies a manual funnel move. Moving into Booked is
// two-phase: when the lead has no booking yet the call returns
// AwaitingAmount without mutating anything. Re-requesting the terminal
// status a lead already occupies is a no-op.
func (uc *LeadStatusUseCase) RequestTransition(ctx context.Context, leadID string, target entity.LeadStatus) (*TransitionOutcome, error) {
	if !target.Valid() {
		return nil, NewValidationError("unknown status %q", target)
	}
	if target == entity.LeadStatusNew {
		return nil, NewValidationError("leads cannot move back to New")
	}
	if target == entity.LeadStatusVisitDone {
		return nil, NewValidationError("Visit Done is set by a verified check-in, not manually")
	}

	uc.Gate.Lock()
	defer uc.Gate.Unlock()

	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if lead.Status.Terminal() && target == lead.Status {
		return &TransitionOutcome{Lead: lead, Applied: false}, nil
	}
	if !lead.CanTransition(target) {
		return nil, NewValidationError("illegal transition from %s to %s", lead.Status, target)
	}

	if target == entity.LeadStatusBooked {
		existing, err := uc.Ledger.Bookings.FindByLeadID(ctx, leadID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return &TransitionOutcome{Lead: lead, AwaitingAmount: true}, nil
		}
		// A booking already exists (the status write failed last time);
		// finish the move without creating another one.
	}

	lead.Advance(target, uc.now())
	if err := uc.Leads.Update(ctx, lead); err != nil {
		return nil, err
	}

	return &TransitionOutcome{Lead: lead, Applied: true}, nil
}

// ConfirmBooking is the second phase of the Booked transition: it
// writes the ledger entry and the status change atomically. The lead is
// never left Booked without a booking, nor the reverse.
func (uc *LeadStatusUseCase) ConfirmBooking(ctx context.Context, leadID string, amount float64) (*entity.Booking, error) {
	uc.Gate.Lock()
	defer uc.Gate.Unlock()

	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if !lead.CanTransition(entity.LeadStatusBooked) {
		return nil, NewValidationError("illegal transition from %s to %s", lead.Status, entity.LeadStatusBooked)
	}

	var booking *entity.Booking
	txn := NewTransaction(uc.Log)

	txn.AddOperation("create_booking", func(ctx context.Context) error {
		b, err := uc.Ledger.Append(ctx, lead, amount)
		if err != nil {
			return err
		}
		booking = b
		return nil
	})
	txn.AddCompensation("delete_booking", func(ctx context.Context) error {
		return uc.Ledger.Remove(ctx, booking.ID)
	})

	txn.AddOperation("update_lead", func(ctx context.Context) error {
		lead.Advance(entity.LeadStatusBooked, uc.now())
		return uc.Leads.Update(ctx, lead)
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, err
	}

	if uc.Events != nil {
		if err := uc.Events.PublishBookingCreated(ctx, queue.BookingCreatedPayload{
			BookingID:   booking.ID,
			LeadID:      lead.ID,
			ClientName:  lead.ClientName,
			SiteID:      booking.SiteID,
			ExecutiveID: booking.ExecutiveID,
			Amount:      booking.Amount,
		}); err != nil && uc.Log != nil {
			uc.Log.WithError(err).Warn("failed to publish booking event")
		}
	}

	return booking, nil
}

func (uc *LeadStatusUseCase) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}
