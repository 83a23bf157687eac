package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/fieldsales/internal/analytics"
	"github.com/xavierca1/fieldsales/internal/entity"
)

var reportNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func fixtureSnapshot() analytics.Snapshot {
	lead := func(id, execID, siteID string, status entity.LeadStatus, source entity.LeadSource, createdAt time.Time) entity.Lead {
		return entity.Lead{
			ID:                  id,
			ClientName:          "Client " + id,
			Phone:               "9876500001",
			LeadSource:          source,
			SiteID:              siteID,
			AssignedExecutiveID: execID,
			Status:              status,
			CreatedAt:           createdAt,
			UpdatedAt:           createdAt,
		}
	}

	return analytics.Snapshot{
		Sites: []entity.Site{
			{ID: "site-1", Name: "Downtown Plaza", Latitude: 28.6139, Longitude: 77.2090, RadiusMeters: 500},
			{ID: "site-2", Name: "Lakeview Heights", Latitude: 28.5355, Longitude: 77.3910, RadiusMeters: 750},
		},
		Users: []entity.User{
			{ID: "admin-1", Name: "Vikram Rao", Email: "vikram@example.com", Role: entity.RoleAdmin},
			{ID: "exec-1", Name: "Priya Sharma", Email: "priya@example.com", Role: entity.RoleExecutive, AssignedSiteID: "site-1"},
			{ID: "exec-2", Name: "Rahul Nair", Email: "rahul@example.com", Role: entity.RoleExecutive, AssignedSiteID: "site-2"},
			{ID: "exec-3", Name: "Sneha Iyer", Email: "sneha@example.com", Role: entity.RoleExecutive, AssignedSiteID: "site-1"},
		},
		Leads: []entity.Lead{
			lead("lead-1", "exec-1", "site-1", entity.LeadStatusBooked, entity.LeadSourceWalkIn, reportNow.AddDate(0, 0, -6)),
			lead("lead-2", "exec-1", "site-1", entity.LeadStatusFollowUp, entity.LeadSourceCampaign, reportNow.AddDate(0, 0, -1)),
			lead("lead-3", "exec-2", "site-2", entity.LeadStatusLost, entity.LeadSourceReferral, reportNow.AddDate(0, 0, -40)),
			lead("lead-4", "exec-2", "site-2", entity.LeadStatusNew, entity.LeadSourceReferral, time.Date(2026, 8, 27, 23, 30, 0, 0, time.UTC)),
			lead("lead-5", "exec-2", "site-2", entity.LeadStatusBooked, entity.LeadSourceReferral, reportNow.AddDate(0, 0, -2)),
		},
		Visits: []entity.Visit{
			{ID: "visit-1", LeadID: "lead-1", ExecutiveID: "exec-1", SiteID: "site-1",
				CheckinTime: time.Date(2026, 8, 22, 9, 0, 0, 0, time.UTC), LocationVerified: true},
			{ID: "visit-2", LeadID: "lead-5", ExecutiveID: "exec-2", SiteID: "site-2",
				CheckinTime: time.Date(2026, 8, 27, 18, 0, 0, 0, time.UTC), LocationVerified: true},
		},
		Bookings: []entity.Booking{
			{ID: "booking-1", LeadID: "lead-1", SiteID: "site-1", ExecutiveID: "exec-1",
				Amount: 5000000, BookingDate: reportNow.AddDate(0, 0, -1), CreatedAt: reportNow.AddDate(0, 0, -1)},
			{ID: "booking-2", LeadID: "lead-5", SiteID: "site-2", ExecutiveID: "exec-2",
				Amount: 3000000, BookingDate: reportNow.AddDate(0, 0, -2), CreatedAt: reportNow.AddDate(0, 0, -2)},
		},
	}
}

func adminQuery(window analytics.TimeWindow) analytics.Query {
	return analytics.Query{
		ViewerRole: entity.RoleAdmin,
		ViewerID:   "admin-1",
		Window:     window,
		Now:        reportNow,
		Location:   time.UTC,
	}
}

func TestComputeTotalsForAdmin(t *testing.T) {
	report := analytics.Compute(fixtureSnapshot(), adminQuery(analytics.WindowAll))

	assert.Equal(t, 5, report.TotalLeads)
	assert.Equal(t, 2, report.TotalVisits)
	assert.Equal(t, 2, report.TotalBookings)
	assert.Equal(t, 8000000.0, report.TotalRevenue)
}

func TestComputeStatusDistribution(t *testing.T) {
	report := analytics.Compute(fixtureSnapshot(), adminQuery(analytics.WindowAll))

	want := map[string]int{
		"New": 1, "Visit Done": 0, "Follow-up": 1, "Booked": 2, "Lost": 1,
	}
	require.Len(t, report.StatusDistribution, 5)
	for _, count := range report.StatusDistribution {
		assert.Equal(t, want[count.Name], count.Value, count.Name)
	}
}

func TestComputeFunnelExcludesLost(t *testing.T) {
	report := analytics.Compute(fixtureSnapshot(), adminQuery(analytics.WindowAll))

	require.Len(t, report.Funnel, 4)
	stages := map[string]int{}
	for _, stage := range report.Funnel {
		stages[stage.Stage] = stage.Value
	}
	assert.NotContains(t, stages, "Lost")
	assert.Equal(t, 1, stages["New"])
	assert.Equal(t, 0, stages["Visit Done"])
	assert.Equal(t, 1, stages["Follow-up"])
	assert.Equal(t, 2, stages["Booked"])
}

func TestComputeSitePerformanceInLakhs(t *testing.T) {
	report := analytics.Compute(fixtureSnapshot(), adminQuery(analytics.WindowAll))

	require.Len(t, report.SitePerformance, 2)
	downtown := report.SitePerformance[0]
	lakeview := report.SitePerformance[1]

	assert.Equal(t, "Downtown Plaza", downtown.Name)
	assert.Equal(t, 2, downtown.Leads)
	assert.Equal(t, 1, downtown.Bookings)
	assert.Equal(t, 50.0, downtown.Revenue)

	assert.Equal(t, "Lakeview Heights", lakeview.Name)
	assert.Equal(t, 3, lakeview.Leads)
	assert.Equal(t, 30.0, lakeview.Revenue)
}

func TestComputeExecutivePerformance(t *testing.T) {
	report := analytics.Compute(fixtureSnapshot(), adminQuery(analytics.WindowAll))

	// Only executives appear, in user order.
	require.Len(t, report.ExecutivePerformance, 3)

	priya := report.ExecutivePerformance[0]
	assert.Equal(t, "Priya Sharma", priya.Name)
	assert.Equal(t, 2, priya.Leads)
	assert.Equal(t, 1, priya.Visits)
	assert.Equal(t, 1, priya.Bookings)
	assert.Equal(t, 50.0, priya.ConversionRate)

	rahul := report.ExecutivePerformance[1]
	assert.Equal(t, 3, rahul.Leads)
	assert.Equal(t, 33.3, rahul.ConversionRate)

	// No leads means a 0% rate, not a division error.
	sneha := report.ExecutivePerformance[2]
	assert.Equal(t, 0, sneha.Leads)
	assert.Equal(t, 0.0, sneha.ConversionRate)
}

func TestComputeExecutiveSeesOnlyOwnRecords(t *testing.T) {
	report := analytics.Compute(fixtureSnapshot(), analytics.Query{
		ViewerRole: entity.RoleExecutive,
		ViewerID:   "exec-1",
		Window:     analytics.WindowAll,
		Now:        reportNow,
		Location:   time.UTC,
	})

	assert.Equal(t, 2, report.TotalLeads)
	assert.Equal(t, 1, report.TotalVisits)
	assert.Equal(t, 1, report.TotalBookings)
	assert.Equal(t, 5000000.0, report.TotalRevenue)
}

func TestComputeWeekWindow(t *testing.T) {
	report := analytics.Compute(fixtureSnapshot(), adminQuery(analytics.WindowWeek))

	// The 40-day-old lead falls outside the rolling 7x24h window.
	assert.Equal(t, 4, report.TotalLeads)
	assert.Equal(t, 2, report.TotalVisits)
	assert.Equal(t, 2, report.TotalBookings)
}

func TestComputeMonthWindow(t *testing.T) {
	report := analytics.Compute(fixtureSnapshot(), adminQuery(analytics.WindowMonth))

	// Month is calendar month to date, so the July lead drops out.
	assert.Equal(t, 4, report.TotalLeads)
	assert.Equal(t, 8000000.0, report.TotalRevenue)
}

func TestComputeDailyTrendUsesCalendarDays(t *testing.T) {
	report := analytics.Compute(fixtureSnapshot(), adminQuery(analytics.WindowAll))

	require.Len(t, report.DailyTrend, 7)
	assert.Equal(t, "Aug 22", report.DailyTrend[0].Date)
	assert.Equal(t, "Aug 28", report.DailyTrend[6].Date)

	counts := make([]int, 0, 7)
	for _, day := range report.DailyTrend {
		counts = append(counts, day.Leads)
	}
	// lead-4 was created at 23:30 the day before now; it counts on its
	// calendar day, not within a rolling 24 hours.
	assert.Equal(t, []int{1, 0, 0, 0, 1, 2, 0}, counts)
}

func TestComputePeakVisitTimes(t *testing.T) {
	report := analytics.Compute(fixtureSnapshot(), adminQuery(analytics.WindowAll))

	require.Len(t, report.PeakVisitTimes, 24)
	assert.Equal(t, "0:00", report.PeakVisitTimes[0].Hour)
	assert.Equal(t, "23:00", report.PeakVisitTimes[23].Hour)

	byHour := map[string]int{}
	for _, bucket := range report.PeakVisitTimes {
		byHour[bucket.Hour] = bucket.Visits
	}
	assert.Equal(t, 1, byHour["9:00"])
	assert.Equal(t, 1, byHour["18:00"])
	assert.Equal(t, 0, byHour["12:00"])
}

func TestComputeCampaignEffectiveness(t *testing.T) {
	report := analytics.Compute(fixtureSnapshot(), adminQuery(analytics.WindowAll))

	require.Len(t, report.CampaignEffectiveness, 3)
	bySource := map[string]analytics.CampaignRollup{}
	for _, rollup := range report.CampaignEffectiveness {
		bySource[rollup.Source] = rollup
	}

	assert.Equal(t, 100.0, bySource["Walk-in"].ConversionRate)
	assert.Equal(t, 0.0, bySource["Campaign"].ConversionRate)
	assert.Equal(t, 3, bySource["Referral"].Leads)
	assert.Equal(t, 1, bySource["Referral"].Bookings)
	assert.Equal(t, 33.3, bySource["Referral"].ConversionRate)
}

func TestComputeEmptySnapshot(t *testing.T) {
	report := analytics.Compute(analytics.Snapshot{}, adminQuery(analytics.WindowAll))

	assert.Equal(t, 0, report.TotalLeads)
	assert.Equal(t, 0.0, report.TotalRevenue)
	assert.Len(t, report.DailyTrend, 7)
	assert.Len(t, report.PeakVisitTimes, 24)
	assert.Len(t, report.Funnel, 4)
}
