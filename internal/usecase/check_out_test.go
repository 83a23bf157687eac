package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

func TestCheckOutClosesVisit(t *testing.T) {
	visits := new(MockVisitRepository)
	checkin := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	visit := entity.NewVisit("lead-1", "exec-1", "site-1", 28.6139, 77.2090, checkin)
	visits.On("FindByID", mock.Anything, visit.ID).Return(visit, nil)
	visits.On("Update", mock.Anything, visit).Return(nil)

	uc := usecase.NewCheckOutUseCase(visits, &usecase.StoreGate{})
	uc.Now = func() time.Time { return checkin.Add(30 * time.Minute) }

	closed, err := uc.Execute(context.Background(), visit.ID)

	require.NoError(t, err)
	assert.False(t, closed.Open())
	assert.Equal(t, 30*time.Minute, closed.Duration())
	visits.AssertNumberOfCalls(t, "Update", 1)
}

func TestCheckOutTwiceFails(t *testing.T) {
	visits := new(MockVisitRepository)
	checkin := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	visit := entity.NewVisit("lead-1", "exec-1", "site-1", 28.6139, 77.2090, checkin)
	require.NoError(t, visit.Close(checkin.Add(time.Hour)))
	visits.On("FindByID", mock.Anything, visit.ID).Return(visit, nil)

	uc := usecase.NewCheckOutUseCase(visits, &usecase.StoreGate{})
	uc.Now = func() time.Time { return checkin.Add(2 * time.Hour) }

	_, err := uc.Execute(context.Background(), visit.ID)

	assert.True(t, usecase.IsValidationError(err))
	visits.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCheckOutUnknownVisit(t *testing.T) {
	visits := new(MockVisitRepository)
	visits.On("FindByID", mock.Anything, "missing").
		Return(nil, usecase.NewNotFoundError("visit", "missing"))

	uc := usecase.NewCheckOutUseCase(visits, &usecase.StoreGate{})

	_, err := uc.Execute(context.Background(), "missing")

	assert.True(t, usecase.IsNotFoundError(err))
}
