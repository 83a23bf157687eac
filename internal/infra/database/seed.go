package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/fieldsales/internal/entity"
)

// SeedDemoData loads the sample dataset into an empty database. It is
// a no-op when any user already exists.
func SeedDemoData(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	sites := NewSiteRepository(db)
	users := NewUserRepository(db)
	leads := NewLeadRepository(db)
	visits := NewVisitRepository(db)
	bookings := NewBookingRepository(db)

	now := time.Now()

	downtown := &entity.Site{ID: uuid.New().String(), Name: "Downtown Plaza", Latitude: 28.6139, Longitude: 77.2090, RadiusMeters: 500, CreatedAt: now}
	riverside := &entity.Site{ID: uuid.New().String(), Name: "Riverside Complex", Latitude: 28.7041, Longitude: 77.1025, RadiusMeters: 300, CreatedAt: now}
	metro := &entity.Site{ID: uuid.New().String(), Name: "Metro Heights", Latitude: 28.5355, Longitude: 77.3910, RadiusMeters: 400, CreatedAt: now}
	for _, site := range []*entity.Site{downtown, riverside, metro} {
		if err := sites.Create(ctx, site); err != nil {
			return err
		}
	}

	admin := &entity.User{ID: uuid.New().String(), Name: "Admin User", Email: "admin@example.com", Role: entity.RoleAdmin, CreatedAt: now}
	manager := &entity.User{ID: uuid.New().String(), Name: "Sales Manager", Email: "manager@example.com", Role: entity.RoleManager, CreatedAt: now}
	john := &entity.User{ID: uuid.New().String(), Name: "John Doe", Email: "executive@example.com", Role: entity.RoleExecutive, AssignedSiteID: downtown.ID, CreatedAt: now}
	jane := &entity.User{ID: uuid.New().String(), Name: "Jane Smith", Email: "jane@example.com", Role: entity.RoleExecutive, AssignedSiteID: riverside.ID, CreatedAt: now}
	for _, user := range []*entity.User{admin, manager, john, jane} {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
	}

	rajesh := &entity.Lead{
		ID: uuid.New().String(), ClientName: "Rajesh Kumar", Phone: "+91 9876543210", Email: "rajesh@example.com",
		LeadSource: entity.LeadSourceWalkIn, SiteID: downtown.ID, AssignedExecutiveID: john.ID,
		Status: entity.LeadStatusBooked, CreatedAt: now.AddDate(0, 0, -7), UpdatedAt: now.AddDate(0, 0, -1),
	}
	priya := &entity.Lead{
		ID: uuid.New().String(), ClientName: "Priya Sharma", Phone: "+91 9876543211", Email: "priya@example.com",
		LeadSource: entity.LeadSourceCampaign, SiteID: downtown.ID, AssignedExecutiveID: john.ID,
		Status: entity.LeadStatusFollowUp, CreatedAt: now.AddDate(0, 0, -5), UpdatedAt: now.AddDate(0, 0, -2),
	}
	amit := &entity.Lead{
		ID: uuid.New().String(), ClientName: "Amit Patel", Phone: "+91 9876543212", Email: "amit@example.com",
		LeadSource: entity.LeadSourceReferral, SiteID: riverside.ID, AssignedExecutiveID: jane.ID,
		Status: entity.LeadStatusVisitDone, CreatedAt: now.AddDate(0, 0, -3), UpdatedAt: now.AddDate(0, 0, -1),
	}
	for _, lead := range []*entity.Lead{rajesh, priya, amit} {
		if err := leads.Create(ctx, lead); err != nil {
			return err
		}
	}

	seedVisit := func(lead *entity.Lead, site *entity.Site, daysAgo int, stay time.Duration) error {
		checkin := now.AddDate(0, 0, -daysAgo)
		checkout := checkin.Add(stay)
		return visits.Create(ctx, &entity.Visit{
			ID: uuid.New().String(), LeadID: lead.ID, ExecutiveID: lead.AssignedExecutiveID, SiteID: site.ID,
			CheckinTime: checkin, CheckoutTime: &checkout, LocationVerified: true,
			Latitude: site.Latitude, Longitude: site.Longitude,
		})
	}
	if err := seedVisit(rajesh, downtown, 7, 2*time.Hour); err != nil {
		return err
	}
	if err := seedVisit(priya, downtown, 5, 90*time.Minute); err != nil {
		return err
	}
	if err := seedVisit(amit, riverside, 3, 3*time.Hour); err != nil {
		return err
	}

	return bookings.Create(ctx, &entity.Booking{
		ID: uuid.New().String(), LeadID: rajesh.ID, SiteID: downtown.ID, ExecutiveID: john.ID,
		Amount: 5000000, BookingDate: now.AddDate(0, 0, -1), CreatedAt: now.AddDate(0, 0, -1),
	})
}
