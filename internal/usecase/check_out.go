package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/fieldsales/internal/entity"
)

type CheckOutUseCase struct {
	Visits VisitRepository
	Gate   *StoreGate
	Now    func() time.Time
}

func NewCheckOutUseCase(visits VisitRepository, gate *StoreGate) *CheckOutUseCase {
	return &CheckOutUseCase{Visits: visits, Gate: gate, Now: time.Now}
}

// Execute closes an open visit. A visit can only be closed once; a
// second attempt fails with a validation error.
func (uc *CheckOutUseCase) Execute(ctx context.Context, visitID string) (*entity.Visit, error) {
	uc.Gate.Lock()
	defer uc.Gate.Unlock()

	visit, err := uc.Visits.FindByID(ctx, visitID)
	if err != nil {
		return nil, err
	}

	if err := visit.Close(uc.now()); err != nil {
		return nil, NewValidationError("%v", err)
	}

	if err := uc.Visits.Update(ctx, visit); err != nil {
		return nil, err
	}

	return visit, nil
}

func (uc *CheckOutUseCase) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}
