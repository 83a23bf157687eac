package database

import (
	"context"
	"database/sql"
	"fmt"
)

// The UNIQUE on bookings.lead_id is load-bearing: it is what makes the
// one-booking-per-lead rule hold across processes, not just behind the
// in-process store gate.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sites (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		latitude      DOUBLE PRECISION NOT NULL,
		longitude     DOUBLE PRECISION NOT NULL,
		radius_meters DOUBLE PRECISION NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		email            TEXT NOT NULL UNIQUE,
		role             TEXT NOT NULL,
		assigned_site_id TEXT REFERENCES sites(id),
		created_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		seq                   BIGSERIAL,
		id                    TEXT PRIMARY KEY,
		client_name           TEXT NOT NULL,
		phone                 TEXT NOT NULL,
		email                 TEXT,
		lead_source           TEXT NOT NULL,
		site_id               TEXT NOT NULL REFERENCES sites(id),
		assigned_executive_id TEXT NOT NULL REFERENCES users(id),
		status                TEXT NOT NULL,
		created_at            TIMESTAMPTZ NOT NULL,
		updated_at            TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS visits (
		id                TEXT PRIMARY KEY,
		lead_id           TEXT NOT NULL REFERENCES leads(id),
		executive_id      TEXT NOT NULL REFERENCES users(id),
		site_id           TEXT NOT NULL REFERENCES sites(id),
		checkin_time      TIMESTAMPTZ NOT NULL,
		checkout_time     TIMESTAMPTZ,
		location_verified BOOLEAN NOT NULL,
		latitude          DOUBLE PRECISION NOT NULL,
		longitude         DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id           TEXT PRIMARY KEY,
		lead_id      TEXT NOT NULL UNIQUE REFERENCES leads(id),
		site_id      TEXT NOT NULL REFERENCES sites(id),
		executive_id TEXT NOT NULL REFERENCES users(id),
		amount       DOUBLE PRECISION NOT NULL CHECK (amount > 0),
		booking_date TIMESTAMPTZ NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL
	)`,
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
