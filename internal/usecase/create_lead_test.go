package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

func newCreateLeadUseCase() (*usecase.CreateLeadUseCase, *MockLeadRepository, *MockSiteRepository, *MockUserRepository) {
	leads := new(MockLeadRepository)
	sites := new(MockSiteRepository)
	users := new(MockUserRepository)
	uc := usecase.NewCreateLeadUseCase(leads, sites, users, &usecase.StoreGate{})
	return uc, leads, sites, users
}

func TestCreateLeadExecutiveOwnsTheLead(t *testing.T) {
	uc, leads, sites, users := newCreateLeadUseCase()
	executive := testExecutive()
	sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
	users.On("FindByID", mock.Anything, "exec-1").Return(executive, nil)
	leads.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).Return(nil)

	lead, err := uc.Execute(context.Background(), usecase.CreateLeadInput{
		Actor:      executive,
		ClientName: "Amit Verma",
		Phone:      "9876500001",
		Source:     entity.LeadSourceWalkIn,
		SiteID:     "site-1",
		// An executive's own ID wins even if someone else is named.
		AssignedExecutiveID: "exec-2",
	})

	require.NoError(t, err)
	assert.Equal(t, "exec-1", lead.AssignedExecutiveID)
	assert.Equal(t, entity.LeadStatusNew, lead.Status)
}

func TestCreateLeadAdminMustNameExecutive(t *testing.T) {
	uc, leads, _, _ := newCreateLeadUseCase()
	admin := &entity.User{ID: "admin-1", Role: entity.RoleAdmin}

	_, err := uc.Execute(context.Background(), usecase.CreateLeadInput{
		Actor:      admin,
		ClientName: "Amit Verma",
		Phone:      "9876500001",
		Source:     entity.LeadSourceWalkIn,
		SiteID:     "site-1",
	})

	assert.True(t, usecase.IsValidationError(err))
	leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLeadManagerForbidden(t *testing.T) {
	uc, leads, _, _ := newCreateLeadUseCase()
	manager := &entity.User{ID: "mgr-1", Role: entity.RoleManager}

	_, err := uc.Execute(context.Background(), usecase.CreateLeadInput{
		Actor:      manager,
		ClientName: "Amit Verma",
		Phone:      "9876500001",
		Source:     entity.LeadSourceWalkIn,
		SiteID:     "site-1",
	})

	assert.True(t, usecase.IsPermissionError(err))
	leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLeadRejectsNonExecutiveAssignee(t *testing.T) {
	uc, leads, sites, users := newCreateLeadUseCase()
	admin := &entity.User{ID: "admin-1", Role: entity.RoleAdmin}
	manager := &entity.User{ID: "mgr-1", Role: entity.RoleManager}
	sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
	users.On("FindByID", mock.Anything, "mgr-1").Return(manager, nil)

	_, err := uc.Execute(context.Background(), usecase.CreateLeadInput{
		Actor:               admin,
		ClientName:          "Amit Verma",
		Phone:               "9876500001",
		Source:              entity.LeadSourceWalkIn,
		SiteID:              "site-1",
		AssignedExecutiveID: "mgr-1",
	})

	assert.True(t, usecase.IsValidationError(err))
	leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLeadUnknownSite(t *testing.T) {
	uc, leads, sites, _ := newCreateLeadUseCase()
	sites.On("FindByID", mock.Anything, "missing").
		Return(nil, usecase.NewNotFoundError("site", "missing"))

	_, err := uc.Execute(context.Background(), usecase.CreateLeadInput{
		Actor:      testExecutive(),
		ClientName: "Amit Verma",
		Phone:      "9876500001",
		Source:     entity.LeadSourceWalkIn,
		SiteID:     "missing",
	})

	assert.True(t, usecase.IsNotFoundError(err))
	leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateDetailsExecutiveOwnLeadOnly(t *testing.T) {
	uc, leads, _, _ := newCreateLeadUseCase()
	lead := testLead(entity.LeadStatusFollowUp)
	lead.AssignedExecutiveID = "exec-2"
	leads.On("FindByID", mock.Anything, "lead-1").Return(lead, nil)

	_, err := uc.UpdateDetails(context.Background(), usecase.UpdateLeadDetailsInput{
		Actor:      testExecutive(),
		LeadID:     "lead-1",
		ClientName: "Amit Verma",
		Phone:      "9876500001",
		Source:     entity.LeadSourceWalkIn,
	})

	assert.True(t, usecase.IsPermissionError(err))
	leads.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateDetailsEditsContactFieldsOnly(t *testing.T) {
	uc, leads, _, _ := newCreateLeadUseCase()
	lead := testLead(entity.LeadStatusFollowUp)
	leads.On("FindByID", mock.Anything, "lead-1").Return(lead, nil)
	leads.On("Update", mock.Anything, lead).Return(nil)

	updated, err := uc.UpdateDetails(context.Background(), usecase.UpdateLeadDetailsInput{
		Actor:      testExecutive(),
		LeadID:     "lead-1",
		ClientName: "Amit K Verma",
		Phone:      "9876500009",
		Email:      "amit@example.com",
		Source:     entity.LeadSourceReferral,
	})

	require.NoError(t, err)
	assert.Equal(t, "Amit K Verma", updated.ClientName)
	assert.Equal(t, entity.LeadSourceReferral, updated.LeadSource)
	assert.Equal(t, entity.LeadStatusFollowUp, updated.Status)
}
