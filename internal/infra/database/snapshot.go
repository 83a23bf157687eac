package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/fieldsales/internal/analytics"
	"github.com/xavierca1/fieldsales/internal/entity"
)

// SnapshotLoader reads every collection inside one repeatable-read,
// read-only transaction so analytics always sees a single consistent
// snapshot, never a partial read across collections.
type SnapshotLoader struct {
	DB *sql.DB
}

func NewSnapshotLoader(db *sql.DB) *SnapshotLoader {
	return &SnapshotLoader{DB: db}
}

func (l *SnapshotLoader) Load(ctx context.Context) (analytics.Snapshot, error) {
	var snap analytics.Snapshot

	tx, err := l.DB.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return snap, fmt.Errorf("failed to open snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if snap.Leads, err = snapshotLeads(ctx, tx); err != nil {
		return snap, err
	}
	if snap.Visits, err = snapshotVisits(ctx, tx); err != nil {
		return snap, err
	}
	if snap.Bookings, err = snapshotBookings(ctx, tx); err != nil {
		return snap, err
	}
	if snap.Sites, err = snapshotSites(ctx, tx); err != nil {
		return snap, err
	}
	if snap.Users, err = snapshotUsers(ctx, tx); err != nil {
		return snap, err
	}

	return snap, tx.Commit()
}

func snapshotLeads(ctx context.Context, tx *sql.Tx) ([]entity.Lead, error) {
	rows, err := tx.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func snapshotVisits(ctx context.Context, tx *sql.Tx) ([]entity.Visit, error) {
	rows, err := tx.QueryContext(ctx, `SELECT `+visitColumns+` FROM visits ORDER BY checkin_time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := []entity.Visit{}
	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, *visit)
	}
	return visits, rows.Err()
}

func snapshotBookings(ctx context.Context, tx *sql.Tx) ([]entity.Booking, error) {
	rows, err := tx.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []entity.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}

func snapshotSites(ctx context.Context, tx *sql.Tx) ([]entity.Site, error) {
	rows, err := tx.QueryContext(ctx, `SELECT `+siteColumns+` FROM sites ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sites := []entity.Site{}
	for rows.Next() {
		var site entity.Site
		if err := rows.Scan(&site.ID, &site.Name, &site.Latitude, &site.Longitude, &site.RadiusMeters, &site.CreatedAt); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

func snapshotUsers(ctx context.Context, tx *sql.Tx) ([]entity.User, error) {
	rows, err := tx.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []entity.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
