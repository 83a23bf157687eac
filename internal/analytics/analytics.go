// Package analytics derives reporting rollups from a full entity
// snapshot. Every report is recomputed from scratch over the snapshot
// it is handed; nothing here reads the store or caches.
package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/xavierca1/fieldsales/internal/entity"
)

type TimeWindow string

const (
	WindowAll   TimeWindow = "all"
	WindowMonth TimeWindow = "month"
	WindowWeek  TimeWindow = "week"
)

func (w TimeWindow) Valid() bool {
	return w == WindowAll || w == WindowMonth || w == WindowWeek
}

// Snapshot is a consistent read of every collection, taken at call
// time by the store collaborator.
type Snapshot struct {
	Leads    []entity.Lead
	Visits   []entity.Visit
	Bookings []entity.Booking
	Sites    []entity.Site
	Users    []entity.User
}

type Query struct {
	ViewerRole entity.Role
	ViewerID   string
	Window     TimeWindow
	// Now and Location default to time.Now() and time.Local; tests
	// inject both.
	Now      time.Time
	Location *time.Location
}

type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type SourceCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type SiteRollup struct {
	Name     string  `json:"name"`
	Leads    int     `json:"leads"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"` // lakhs: amount / 1e5
}

type ExecutiveRollup struct {
	Name           string  `json:"name"`
	Leads          int     `json:"leads"`
	Visits         int     `json:"visits"`
	Bookings       int     `json:"bookings"`
	ConversionRate float64 `json:"conversion_rate"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Leads int    `json:"leads"`
}

type HourCount struct {
	Hour   string `json:"hour"`
	Visits int    `json:"visits"`
}

type FunnelStage struct {
	Stage string `json:"stage"`
	Value int    `json:"value"`
}

type CampaignRollup struct {
	Source         string  `json:"source"`
	Leads          int     `json:"leads"`
	Bookings       int     `json:"bookings"`
	ConversionRate float64 `json:"conversion_rate"`
}

type Report struct {
	StatusDistribution    []StatusCount     `json:"status_distribution"`
	SourceDistribution    []SourceCount     `json:"source_distribution"`
	SitePerformance       []SiteRollup      `json:"site_performance"`
	ExecutivePerformance  []ExecutiveRollup `json:"executive_performance"`
	DailyTrend            []DailyCount      `json:"daily_trend"`
	PeakVisitTimes        []HourCount       `json:"peak_visit_times"`
	Funnel                []FunnelStage     `json:"funnel"`
	CampaignEffectiveness []CampaignRollup  `json:"campaign_effectiveness"`
	TotalLeads            int               `json:"total_leads"`
	TotalVisits           int               `json:"total_visits"`
	TotalBookings         int               `json:"total_bookings"`
	TotalRevenue          float64           `json:"total_revenue"`
}

var funnelStages = []entity.LeadStatus{
	entity.LeadStatusNew,
	entity.LeadStatusVisitDone,
	entity.LeadStatusFollowUp,
	entity.LeadStatusBooked,
}

var allStatuses = []entity.LeadStatus{
	entity.LeadStatusNew,
	entity.LeadStatusVisitDone,
	entity.LeadStatusFollowUp,
	entity.LeadStatusBooked,
	entity.LeadStatusLost,
}

var allSources = []entity.LeadSource{
	entity.LeadSourceWalkIn,
	entity.LeadSourceCampaign,
	entity.LeadSourceReferral,
}

// Compute builds the full report for one viewer. Executives see only
// the records they own; admins and managers see everything.
func Compute(snap Snapshot, q Query) Report {
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	loc := q.Location
	if loc == nil {
		loc = time.Local
	}

	leads := snap.Leads
	visits := snap.Visits
	bookings := snap.Bookings

	if q.ViewerRole == entity.RoleExecutive {
		leads = filterLeads(leads, func(l entity.Lead) bool { return l.AssignedExecutiveID == q.ViewerID })
		visits = filterVisits(visits, func(v entity.Visit) bool { return v.ExecutiveID == q.ViewerID })
		bookings = filterBookings(bookings, func(b entity.Booking) bool { return b.ExecutiveID == q.ViewerID })
	}

	if q.Window != WindowAll && q.Window != "" {
		var start time.Time
		if q.Window == WindowMonth {
			start = startOfMonth(now, loc)
		} else {
			start = now.Add(-7 * 24 * time.Hour)
		}
		leads = filterLeads(leads, func(l entity.Lead) bool { return !l.CreatedAt.Before(start) })
		visits = filterVisits(visits, func(v entity.Visit) bool { return !v.CheckinTime.Before(start) })
		bookings = filterBookings(bookings, func(b entity.Booking) bool { return !b.CreatedAt.Before(start) })
	}

	return Report{
		StatusDistribution:    statusDistribution(leads),
		SourceDistribution:    sourceDistribution(leads),
		SitePerformance:       sitePerformance(snap.Sites, leads, bookings),
		ExecutivePerformance:  executivePerformance(snap.Users, leads, visits, bookings),
		DailyTrend:            dailyTrend(leads, now, loc),
		PeakVisitTimes:        peakVisitTimes(visits, loc),
		Funnel:                funnel(leads),
		CampaignEffectiveness: campaignEffectiveness(leads, bookings),
		TotalLeads:            len(leads),
		TotalVisits:           len(visits),
		TotalBookings:         len(bookings),
		TotalRevenue:          totalRevenue(bookings),
	}
}

func statusDistribution(leads []entity.Lead) []StatusCount {
	out := make([]StatusCount, 0, len(allStatuses))
	for _, status := range allStatuses {
		out = append(out, StatusCount{Name: string(status), Value: countLeads(leads, func(l entity.Lead) bool {
			return l.Status == status
		})})
	}
	return out
}

func sourceDistribution(leads []entity.Lead) []SourceCount {
	out := make([]SourceCount, 0, len(allSources))
	for _, source := range allSources {
		out = append(out, SourceCount{Name: string(source), Value: countLeads(leads, func(l entity.Lead) bool {
			return l.LeadSource == source
		})})
	}
	return out
}

func sitePerformance(sites []entity.Site, leads []entity.Lead, bookings []entity.Booking) []SiteRollup {
	out := make([]SiteRollup, 0, len(sites))
	for _, site := range sites {
		siteBookings := filterBookings(bookings, func(b entity.Booking) bool { return b.SiteID == site.ID })
		out = append(out, SiteRollup{
			Name:     site.Name,
			Leads:    countLeads(leads, func(l entity.Lead) bool { return l.SiteID == site.ID }),
			Bookings: len(siteBookings),
			Revenue:  totalRevenue(siteBookings) / 100000, // lakhs
		})
	}
	return out
}

func executivePerformance(users []entity.User, leads []entity.Lead, visits []entity.Visit, bookings []entity.Booking) []ExecutiveRollup {
	out := []ExecutiveRollup{}
	for _, user := range users {
		if user.Role != entity.RoleExecutive {
			continue
		}
		execLeads := countLeads(leads, func(l entity.Lead) bool { return l.AssignedExecutiveID == user.ID })
		execBookings := len(filterBookings(bookings, func(b entity.Booking) bool { return b.ExecutiveID == user.ID }))
		out = append(out, ExecutiveRollup{
			Name:           user.Name,
			Leads:          execLeads,
			Visits:         len(filterVisits(visits, func(v entity.Visit) bool { return v.ExecutiveID == user.ID })),
			Bookings:       execBookings,
			ConversionRate: conversionRate(execBookings, execLeads),
		})
	}
	return out
}

// dailyTrend counts leads created on each of the last 7 calendar days,
// oldest first, today included. Calendar-day equality, not a rolling
// 24h window.
func dailyTrend(leads []entity.Lead, now time.Time, loc *time.Location) []DailyCount {
	out := make([]DailyCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		count := countLeads(leads, func(l entity.Lead) bool {
			return sameCalendarDay(l.CreatedAt, day, loc)
		})
		out = append(out, DailyCount{Date: dayLabel(day, loc), Leads: count})
	}
	return out
}

func peakVisitTimes(visits []entity.Visit, loc *time.Location) []HourCount {
	buckets := make([]int, 24)
	for _, visit := range visits {
		buckets[hourOfDay(visit.CheckinTime, loc)]++
	}

	out := make([]HourCount, 0, 24)
	for hour, count := range buckets {
		out = append(out, HourCount{Hour: hourLabel(hour), Visits: count})
	}
	return out
}

// funnel deliberately excludes Lost: it reports progression through the
// live pipeline only.
func funnel(leads []entity.Lead) []FunnelStage {
	out := make([]FunnelStage, 0, len(funnelStages))
	for _, stage := range funnelStages {
		out = append(out, FunnelStage{Stage: string(stage), Value: countLeads(leads, func(l entity.Lead) bool {
			return l.Status == stage
		})})
	}
	return out
}

func campaignEffectiveness(leads []entity.Lead, bookings []entity.Booking) []CampaignRollup {
	leadSource := make(map[string]entity.LeadSource, len(leads))
	for _, lead := range leads {
		leadSource[lead.ID] = lead.LeadSource
	}

	out := make([]CampaignRollup, 0, len(allSources))
	for _, source := range allSources {
		sourceLeads := countLeads(leads, func(l entity.Lead) bool { return l.LeadSource == source })
		sourceBookings := 0
		for _, booking := range bookings {
			if s, ok := leadSource[booking.LeadID]; ok && s == source {
				sourceBookings++
			}
		}
		out = append(out, CampaignRollup{
			Source:         string(source),
			Leads:          sourceLeads,
			Bookings:       sourceBookings,
			ConversionRate: conversionRate(sourceBookings, sourceLeads),
		})
	}
	return out
}

// conversionRate is bookings/leads as a percentage rounded to one
// decimal, and defined as 0 when there are no leads.
func conversionRate(bookings, leads int) float64 {
	if leads == 0 {
		return 0
	}
	return math.Round(float64(bookings)/float64(leads)*1000) / 10
}

func totalRevenue(bookings []entity.Booking) float64 {
	sum := 0.0
	for _, booking := range bookings {
		sum += booking.Amount
	}
	return sum
}

func hourLabel(hour int) string {
	return fmt.Sprintf("%d:00", hour)
}

func filterLeads(in []entity.Lead, keep func(entity.Lead) bool) []entity.Lead {
	out := []entity.Lead{}
	for _, l := range in {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

func filterVisits(in []entity.Visit, keep func(entity.Visit) bool) []entity.Visit {
	out := []entity.Visit{}
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func filterBookings(in []entity.Booking, keep func(entity.Booking) bool) []entity.Booking {
	out := []entity.Booking{}
	for _, b := range in {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func countLeads(in []entity.Lead, keep func(entity.Lead) bool) int {
	n := 0
	for _, l := range in {
		if keep(l) {
			n++
		}
	}
	return n
}
